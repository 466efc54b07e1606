package ddragon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"lol-tracker/internal/constants"

	"github.com/rs/zerolog"
)

type fakeCDN struct {
	mu        sync.Mutex
	versions  string
	hits      map[string]int
	failAll   atomic.Bool
	champions map[string]string
}

func newFakeCDN() *fakeCDN {
	return &fakeCDN{
		versions: `["14.2.1","14.1.1"]`,
		hits:     make(map[string]int),
		champions: map[string]string{
			"14.1.1": `{"data":{"Kled":{"id":"Kled","key":"240","name":"Kled","image":{"full":"Kled.png"}}}}`,
			"14.2.1": `{"data":{"LeeSin":{"id":"LeeSin","key":"64","name":"Lee Sin","image":{"full":"LeeSin.png"}}}}`,
		},
	}
}

func (f *fakeCDN) setVersions(v string) {
	f.mu.Lock()
	f.versions = v
	f.mu.Unlock()
}

func (f *fakeCDN) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeCDN) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.hits {
		n += c
	}
	return n
}

func (f *fakeCDN) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	versions := f.versions
	f.mu.Unlock()

	if f.failAll.Load() {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	path := r.URL.Path
	switch {
	case path == "/api/versions.json":
		w.Write([]byte(versions))
	case strings.HasSuffix(path, "/data/en_US/champion.json"):
		version := strings.Split(path, "/")[2]
		w.Write([]byte(f.champions[version]))
	case strings.HasSuffix(path, "/data/en_US/champion/LeeSin.json"):
		w.Write([]byte(`{"data":{"LeeSin":{"id":"LeeSin","key":"64","name":"Lee Sin","title":"the Blind Monk","spells":[{"id":"LeeSinQOne","name":"Sonic Wave"}]}}}`))
	case strings.HasSuffix(path, "/data/en_US/item.json"):
		w.Write([]byte(`{"data":{"3031":{"name":"Infinity Edge","gold":{"total":3400}},"bad":{"name":"x"}}}`))
	case strings.HasSuffix(path, "/data/en_US/summoner.json"):
		w.Write([]byte(`{"data":{"SummonerFlash":{"id":"SummonerFlash","key":"4","name":"Flash","image":{"full":"SummonerFlash.png"}}}}`))
	case strings.HasSuffix(path, "/data/en_US/runesReforged.json"):
		w.Write([]byte(`[{"id":8000,"key":"Precision","name":"Precision","icon":"perk-images/Styles/7201_Precision.png","slots":[{"runes":[{"id":8005,"key":"PressTheAttack","name":"Press the Attack","icon":"perk-images/Styles/Precision/PressTheAttack/PressTheAttack.png"}]}]}]`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestService(t *testing.T) (*Service, *fakeCDN) {
	t.Helper()
	cdn := newFakeCDN()
	server := httptest.NewServer(cdn)
	t.Cleanup(server.Close)
	return New(server.URL, zerolog.Nop()), cdn
}

func TestVersion_FetchesOnce(t *testing.T) {
	svc, cdn := newTestService(t)
	ctx := context.Background()

	if v := svc.Version(ctx); v != "14.2.1" {
		t.Fatalf("Version = %q, want 14.2.1", v)
	}
	if v := svc.Version(ctx); v != "14.2.1" {
		t.Fatalf("second Version = %q, want 14.2.1", v)
	}
	svc.Versions(ctx)

	if n := cdn.count("/api/versions.json"); n != 1 {
		t.Errorf("versions.json fetched %d times, want 1", n)
	}
}

func TestVersion_FallbackNotPinned(t *testing.T) {
	svc, cdn := newTestService(t)
	ctx := context.Background()

	cdn.failAll.Store(true)
	if v := svc.Version(ctx); v != constants.FallbackVersion {
		t.Fatalf("Version = %q, want fallback %q", v, constants.FallbackVersion)
	}

	cdn.failAll.Store(false)
	if v := svc.Version(ctx); v != "14.2.1" {
		t.Errorf("Version after recovery = %q, want 14.2.1", v)
	}
}

func TestRefreshVersion_InvalidatesChampions(t *testing.T) {
	svc, cdn := newTestService(t)
	ctx := context.Background()

	cdn.setVersions(`["14.1.1"]`)
	champs := svc.Champions(ctx)
	if _, ok := champs[240]; !ok {
		t.Fatalf("expected Kled in 14.1.1 champions, got %v", champs)
	}

	cdn.setVersions(`["14.2.1","14.1.1"]`)
	if v := svc.RefreshVersion(ctx); v != "14.2.1" {
		t.Fatalf("RefreshVersion = %q, want 14.2.1", v)
	}

	champs = svc.Champions(ctx)
	if _, ok := champs[240]; ok {
		t.Error("stale 14.1.1 champion returned for 14.2.1")
	}
	if c, ok := champs[64]; !ok || c.Name != "Lee Sin" {
		t.Errorf("expected Lee Sin under key 64, got %v", champs)
	}
	if n := cdn.count("/cdn/14.2.1/data/en_US/champion.json"); n != 1 {
		t.Errorf("14.2.1 champion.json fetched %d times, want 1", n)
	}
}

func TestChampion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	detail, ok := svc.Champion(ctx, "LeeSin")
	if !ok {
		t.Fatal("expected LeeSin detail")
	}
	if detail.Key != 64 || detail.Title != "the Blind Monk" || len(detail.Spells) != 1 {
		t.Errorf("detail = %+v", detail)
	}

	if _, ok := svc.Champion(ctx, "Nobody"); ok {
		t.Error("unknown champion should be absent")
	}
}

func TestChampion_RejectsMalformedID(t *testing.T) {
	svc, cdn := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"../../../api/versions", "Lee/Sin", "LeeSin.json", "", "Lee%2FSin", "Kai'Sa"} {
		if detail, ok := svc.Champion(ctx, id); ok || detail != nil {
			t.Errorf("Champion(%q) = (%v, %v), want absent", id, detail, ok)
		}
	}
	if n := cdn.total(); n != 0 {
		t.Errorf("malformed ids reached the CDN %d times, want 0", n)
	}
}

func TestLookupsDegradeToEmpty(t *testing.T) {
	svc, cdn := newTestService(t)
	cdn.failAll.Store(true)
	ctx := context.Background()

	if got := svc.Champions(ctx); got == nil || len(got) != 0 {
		t.Errorf("Champions = %v, want empty map", got)
	}
	if got := svc.Items(ctx); got == nil || len(got) != 0 {
		t.Errorf("Items = %v, want empty map", got)
	}
	if got := svc.Runes(ctx); got == nil || len(got) != 0 {
		t.Errorf("Runes = %v, want empty slice", got)
	}
	if got := svc.Versions(ctx); len(got) != 1 || got[0] != constants.FallbackVersion {
		t.Errorf("Versions = %v, want fallback", got)
	}
}

func TestCatalog(t *testing.T) {
	svc, _ := newTestService(t)
	cat := svc.Catalog(context.Background())

	if cat.Version != "14.2.1" {
		t.Errorf("Version = %q", cat.Version)
	}
	if cat.ChampionName(64) != "Lee Sin" {
		t.Errorf("ChampionName(64) = %q", cat.ChampionName(64))
	}
	if cat.ChampionName(9999) != "Champion 9999" {
		t.Errorf("ChampionName(9999) = %q", cat.ChampionName(9999))
	}
	if !strings.HasSuffix(cat.ChampionIcon(64), "/cdn/14.2.1/img/champion/LeeSin.png") {
		t.Errorf("ChampionIcon(64) = %q", cat.ChampionIcon(64))
	}
	if cat.ItemName(3031) != "Infinity Edge" || len(cat.Items) != 1 {
		t.Errorf("Items = %v", cat.Items)
	}
	if cat.SpellName(4) != "Flash" {
		t.Errorf("SpellName(4) = %q", cat.SpellName(4))
	}
	if cat.RuneName(8005) != "Press the Attack" || cat.Runes[8005].TreeID != 8000 {
		t.Errorf("rune 8005 = %+v", cat.Runes[8005])
	}
	if cat.RuneName(8000) != "Precision" {
		t.Errorf("tree 8000 = %+v", cat.Runes[8000])
	}
}
