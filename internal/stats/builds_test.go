package stats

import (
	"strings"
	"testing"
)

func TestBuildFor(t *testing.T) {
	tests := []struct {
		name       string
		champion   string
		tags       []string
		role       string
		wantSource string
		wantKey    int
		wantRole   string
	}{
		{"champion exact role", "Akali", []string{"Assassin"}, "TOP", BuildSourceChampion, 8010, "TOP"},
		{"match-v5 middle position", "Akali", nil, "MIDDLE", BuildSourceChampion, 8112, "MID"},
		{"champion falls back to first build", "Ahri", nil, "UTILITY", BuildSourceChampion, 8112, "MID"},
		{"class build by role", "Garen", []string{"Tank", "Fighter"}, "JUNGLE", BuildSourceClass, 8437, "JUNGLE"},
		{"class falls back to first role", "Lux", []string{"Mage"}, "UTILITY", BuildSourceClass, 8229, "MID"},
		{"unknown class is fighter top", "Nobody", []string{"Specialist"}, "BOTTOM", BuildSourceClass, 8010, "TOP"},
		{"no tags is fighter top", "Nobody", nil, "", BuildSourceClass, 8010, "TOP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, source := BuildFor(tt.champion, tt.tags, tt.role)
			if source != tt.wantSource || b.Keystone != tt.wantKey || b.Role != tt.wantRole {
				t.Errorf("BuildFor = (%s %s keystone %d), want (%s %s keystone %d)",
					source, b.Role, b.Keystone, tt.wantSource, tt.wantRole, tt.wantKey)
			}
		})
	}
}

func TestClassBuildFighterTop(t *testing.T) {
	b := ClassBuild("Fighter", "TOP")
	if b.SecondaryTree != 8400 || b.Summoners != [2]int{4, 12} || b.Boots != 3111 || b.Games != 15000 {
		t.Errorf("fighter top = %+v", b)
	}
	if len(b.CoreItems) != 3 || b.CoreItems[0] != 3078 {
		t.Errorf("core items = %v", b.CoreItems)
	}
}

func TestInGameTips(t *testing.T) {
	tips := InGameTips(nil)
	if len(tips) != 3 {
		t.Fatalf("tips = %v, want header and two tips", tips)
	}

	tips = InGameTips([]string{"Ahri", "Lee Sin"})
	if len(tips) != 4 || !strings.Contains(tips[3], "Ahri, Lee Sin") {
		t.Errorf("tips = %v", tips)
	}
}
