package readwise

// Document is a Reader document as returned by the list endpoint.
type Document struct {
	ID              string         `json:"id"`
	URL             string         `json:"url"`
	SourceURL       string         `json:"source_url"`
	Title           string         `json:"title"`
	Author          string         `json:"author"`
	Source          string         `json:"source"`
	Category        string         `json:"category"`
	Location        string         `json:"location"`
	Tags            map[string]any `json:"tags"`
	SiteName        *string        `json:"site_name"`
	WordCount       int            `json:"word_count"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
	Notes           *string        `json:"notes"`
	PublishedDate   any            `json:"published_date"`
	Summary         string         `json:"summary"`
	ImageURL        *string        `json:"image_url"`
	ParentID        *string        `json:"parent_id"`
	ReadingProgress *float64       `json:"reading_progress"`
	FirstOpenedAt   *string        `json:"first_opened_at"`
	LastOpenedAt    *string        `json:"last_opened_at"`
	SavedAt         string         `json:"saved_at"`
	LastMovedAt     string         `json:"last_moved_at"`
	HTMLContent     *string        `json:"html_content,omitempty"`
	Markdown        string         `json:"markdown,omitempty"`
}

// DocumentList is one page of the list endpoint.
type DocumentList struct {
	Count          int        `json:"count"`
	NextPageCursor *string    `json:"nextPageCursor"`
	Results        []Document `json:"results"`
}

// Locations accepted by the list endpoint.
var Locations = []string{"new", "later", "shortlist", "archive", "feed"}

// Categories accepted by the list endpoint.
var Categories = []string{"article", "email", "rss", "highlight", "tweet", "pdf", "epub", "note", "video"}
