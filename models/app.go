package models

// App is the canonical app-metadata record persisted to the processed dataset.
// Duplicate appId values are retained as separate records; only derived
// lookups (TitleIndex) collapse them.
type App struct {
	AppID           string   `json:"appId"`
	Title           string   `json:"title,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	DescriptionText string   `json:"description_text"`
	MinInstalls     int64    `json:"minInstalls,omitempty"`
	RealInstalls    int64    `json:"realInstalls,omitempty"`
	Score           float64  `json:"score,omitempty"`
	Version         string   `json:"version,omitempty"`
	UpdatedISO      string   `json:"updated_iso,omitempty"`
	ReleasedISO     string   `json:"released_iso,omitempty"`
	LastUpdatedISO  string   `json:"lastUpdatedOn_iso,omitempty"`
	CategoryIDs     []string `json:"category_ids"`
	CategoryNames   []string `json:"category_names"`
}

// TitleIndex maps appId to title with insertion-order iteration and
// overwrite-on-duplicate-key semantics: a repeated appId keeps its original
// position but takes the latest title. Lookup results therefore depend on
// source row order (last write wins).
type TitleIndex struct {
	order  []string
	titles map[string]string
}

// NewTitleIndex returns an empty index.
func NewTitleIndex() *TitleIndex {
	return &TitleIndex{titles: make(map[string]string)}
}

// Put records the title for appID, overwriting any previous value.
func (ix *TitleIndex) Put(appID, title string) {
	if appID == "" {
		return
	}
	if _, exists := ix.titles[appID]; !exists {
		ix.order = append(ix.order, appID)
	}
	ix.titles[appID] = title
}

// Get returns the last title recorded for appID.
func (ix *TitleIndex) Get(appID string) (string, bool) {
	title, ok := ix.titles[appID]
	return title, ok
}

// AppIDs returns the known ids in first-insertion order.
func (ix *TitleIndex) AppIDs() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// Len returns the number of distinct ids in the index.
func (ix *TitleIndex) Len() int { return len(ix.order) }
