// Package routing maps Riot platform regions onto their regional routing clusters.
package routing

import (
	"sort"
	"strings"

	"lol-tracker/internal/config"
)

const DefaultCluster = "americas"

type Region struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Routing string `json:"routing"`
}

var platforms = map[string]Region{
	"br1":  {ID: "br1", Name: "Brazil", Routing: "americas"},
	"eun1": {ID: "eun1", Name: "EU Nordic & East", Routing: "europe"},
	"euw1": {ID: "euw1", Name: "EU West", Routing: "europe"},
	"jp1":  {ID: "jp1", Name: "Japan", Routing: "asia"},
	"kr":   {ID: "kr", Name: "Korea", Routing: "asia"},
	"la1":  {ID: "la1", Name: "Latin America North", Routing: "americas"},
	"la2":  {ID: "la2", Name: "Latin America South", Routing: "americas"},
	"na1":  {ID: "na1", Name: "North America", Routing: "americas"},
	"oc1":  {ID: "oc1", Name: "Oceania", Routing: "sea"},
	"tr1":  {ID: "tr1", Name: "Turkey", Routing: "europe"},
	"ru":   {ID: "ru", Name: "Russia", Routing: "europe"},
	"me1":  {ID: "me1", Name: "Middle East", Routing: "europe"},
	"ph2":  {ID: "ph2", Name: "Philippines", Routing: "sea"},
	"sg2":  {ID: "sg2", Name: "Singapore", Routing: "sea"},
	"th2":  {ID: "th2", Name: "Thailand", Routing: "sea"},
	"tw2":  {ID: "tw2", Name: "Taiwan", Routing: "sea"},
	"vn2":  {ID: "vn2", Name: "Vietnam", Routing: "sea"},
}

// Table is immutable after construction and safe for concurrent use.
type Table struct {
	fallback string
}

func New(fallback string) *Table {
	if fallback == "" {
		fallback = DefaultCluster
	}
	return &Table{fallback: fallback}
}

func NewTable(cfg *config.Config) *Table {
	return New(cfg.DefaultRouting)
}

// Resolve never fails: unknown regions map to the configured fallback cluster.
func (t *Table) Resolve(region string) string {
	if r, ok := platforms[normalize(region)]; ok {
		return r.Routing
	}
	return t.fallback
}

func (t *Table) Known(region string) bool {
	_, ok := platforms[normalize(region)]
	return ok
}

func (t *Table) Regions() []Region {
	regions := make([]Region, 0, len(platforms))
	for _, r := range platforms {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].ID < regions[j].ID })
	return regions
}

func normalize(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}
