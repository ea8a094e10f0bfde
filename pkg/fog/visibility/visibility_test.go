package visibility

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		creator    string
		viewer     string
		privileged bool
		solo       bool
		want       Kind
	}{
		{"creator sees own fog translucent", "alice", "alice", false, false, KindOwn},
		{"other viewer sees opaque fog", "alice", "bob", false, false, KindForeign},
		{"privileged creator in player perspective sees foreign", "alice", "alice", true, false, KindForeign},
		{"solo play hides own fog too", "alice", "alice", false, true, KindForeign},
		{"privileged other viewer sees foreign", "alice", "bob", true, false, KindForeign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.creator, tt.viewer, tt.privileged, tt.solo)
			if got.Kind != tt.want {
				t.Errorf("Resolve() kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestOpacityTiersDiffer(t *testing.T) {
	ownT := Resolve("alice", "alice", false, false)
	foreignT := Resolve("alice", "bob", false, false)

	if ownT.FillOpacity >= foreignT.FillOpacity {
		t.Error("own fog should be more translucent than foreign fog")
	}
	if ownT.CloudOpacity >= foreignT.CloudOpacity {
		t.Error("own cloud decoration should be more translucent")
	}
	if ownT.GlowOpacity >= foreignT.GlowOpacity {
		t.Error("own glow should be weaker")
	}
}

func TestPrivilegedPerspectiveMatchesForeign(t *testing.T) {
	asPlayer := Resolve("alice", "alice", true, false)
	stranger := Resolve("alice", "bob", false, false)
	if asPlayer != stranger {
		t.Errorf("privileged player-perspective = %+v, want the foreign treatment %+v", asPlayer, stranger)
	}
}

func TestTreatmentsAreStable(t *testing.T) {
	if Own().Kind != KindOwn || Foreign().Kind != KindForeign {
		t.Error("palette accessors return the wrong treatments")
	}
	if Own() == Foreign() {
		t.Error("own and foreign treatments must differ")
	}
}
