package ddragon

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Catalog is a snapshot of one patch's lookup tables, used to enrich responses with names and icons.
type Catalog struct {
	Version   string
	Champions map[int]Champion
	Items     map[int]Item
	Spells    map[int]SummonerSpell
	Runes     map[int]Rune

	base string
}

func (s *Service) Catalog(ctx context.Context) *Catalog {
	c := &Catalog{Version: s.Version(ctx), base: s.base}

	// lookups degrade internally, so the group never returns an error
	var g errgroup.Group
	g.Go(func() error {
		c.Champions = s.Champions(ctx)
		return nil
	})
	g.Go(func() error {
		c.Items = s.Items(ctx)
		return nil
	})
	g.Go(func() error {
		c.Spells = s.SummonerSpells(ctx)
		return nil
	})
	g.Go(func() error {
		c.Runes = FlattenRunes(s.Runes(ctx))
		return nil
	})
	_ = g.Wait()

	return c
}

// FlattenRunes indexes every tree and every rune by id. Trees are included so style ids resolve too.
func FlattenRunes(trees []RuneTree) map[int]Rune {
	out := make(map[int]Rune)
	for _, tree := range trees {
		out[tree.ID] = Rune{ID: tree.ID, Key: tree.Key, Name: tree.Name, Icon: tree.Icon}
		for _, slot := range tree.Slots {
			for _, r := range slot.Runes {
				r.TreeID = tree.ID
				out[r.ID] = r
			}
		}
	}
	return out
}

func (c *Catalog) ChampionName(id int) string {
	if champ, ok := c.Champions[id]; ok {
		return champ.Name
	}
	return fmt.Sprintf("Champion %d", id)
}

func (c *Catalog) ChampionIcon(id int) string {
	champ, ok := c.Champions[id]
	if !ok {
		return ""
	}
	return ChampionIconURL(c.base, c.Version, champ.Image.Full)
}

func (c *Catalog) ItemName(id int) string {
	return c.Items[id].Name
}

func (c *Catalog) ItemIcon(id int) string {
	if id == 0 {
		return ""
	}
	return ItemIconURL(c.base, c.Version, id)
}

func (c *Catalog) SpellName(id int) string {
	return c.Spells[id].Name
}

func (c *Catalog) SpellIcon(id int) string {
	spell, ok := c.Spells[id]
	if !ok {
		return ""
	}
	return SpellIconURL(c.base, c.Version, spell.Image.Full)
}

func (c *Catalog) RuneName(id int) string {
	return c.Runes[id].Name
}

func (c *Catalog) RuneIcon(id int) string {
	r, ok := c.Runes[id]
	if !ok {
		return ""
	}
	return RuneIconURL(c.base, r.Icon)
}

func (c *Catalog) ProfileIcon(id int) string {
	return ProfileIconURL(c.base, c.Version, id)
}

func ChampionIconURL(base, version, image string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s", base, version, image)
}

func ItemIconURL(base, version string, id int) string {
	return fmt.Sprintf("%s/cdn/%s/img/item/%d.png", base, version, id)
}

func SpellIconURL(base, version, image string) string {
	return fmt.Sprintf("%s/cdn/%s/img/spell/%s", base, version, image)
}

func ProfileIconURL(base, version string, id int) string {
	return fmt.Sprintf("%s/cdn/%s/img/profileicon/%d.png", base, version, id)
}

func RuneIconURL(base, icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("%s/cdn/img/%s", base, icon)
}
