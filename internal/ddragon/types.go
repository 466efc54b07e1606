package ddragon

type Image struct {
	Full string `json:"full"`
}

type Champion struct {
	ID    string   `json:"id"`
	Key   int      `json:"key"`
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Image Image    `json:"image"`
}

type ChampionDetail struct {
	Champion
	Lore    string             `json:"lore"`
	Blurb   string             `json:"blurb"`
	Passive Ability            `json:"passive"`
	Spells  []Ability          `json:"spells"`
	Stats   map[string]float64 `json:"stats"`
}

type Ability struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       Image  `json:"image"`
}

type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Plaintext   string   `json:"plaintext"`
	Tags        []string `json:"tags"`
	Gold        struct {
		Base        int  `json:"base"`
		Total       int  `json:"total"`
		Sell        int  `json:"sell"`
		Purchasable bool `json:"purchasable"`
	} `json:"gold"`
	Image Image `json:"image"`
}

type SummonerSpell struct {
	ID           string `json:"id"`
	Key          int    `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CooldownBurn string `json:"cooldownBurn"`
	Image        Image  `json:"image"`
}

type RuneTree struct {
	ID    int        `json:"id"`
	Key   string     `json:"key"`
	Name  string     `json:"name"`
	Icon  string     `json:"icon"`
	Slots []RuneSlot `json:"slots"`
}

type RuneSlot struct {
	Runes []Rune `json:"runes"`
}

type Rune struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	ShortDesc string `json:"shortDesc,omitempty"`
	TreeID    int    `json:"treeId,omitempty"`
}

// raw shapes as served by the CDN, keyed by string ids

type rawChampion struct {
	ID    string   `json:"id"`
	Key   string   `json:"key"`
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Image Image    `json:"image"`
}

type rawChampionDetail struct {
	rawChampion
	Lore    string             `json:"lore"`
	Blurb   string             `json:"blurb"`
	Passive Ability            `json:"passive"`
	Spells  []Ability          `json:"spells"`
	Stats   map[string]float64 `json:"stats"`
}

type rawSpell struct {
	ID           string `json:"id"`
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CooldownBurn string `json:"cooldownBurn"`
	Image        Image  `json:"image"`
}

type dataEnvelope[T any] struct {
	Data map[string]T `json:"data"`
}
