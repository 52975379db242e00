package response_models

type MangaResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	AltTitle     string   `json:"alt_title,omitempty"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	Status       string   `json:"status"`
	CoverURL     string   `json:"cover_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	ViewCount    int64    `json:"view_count"`
	Genres       []string `json:"genres"`
	ChapterCount int      `json:"chapter_count"`
}

type ChapterResponse struct {
	ID         string         `json:"id"`
	MangaID    string         `json:"manga_id"`
	Number     float64        `json:"number"`
	Title      string         `json:"title"`
	ReleasedAt int64          `json:"released_at"`
	ViewCount  int64          `json:"view_count"`
	IsPremium  bool           `json:"is_premium"`
	Pages      []PageResponse `json:"pages,omitempty"`
}

type PageResponse struct {
	ID       string `json:"id"`
	Index    int    `json:"index"`
	ImageURL string `json:"image_url"`
}

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CarouselEntryResponse struct {
	ID         string `json:"id"`
	MangaID    string `json:"manga_id"`
	MangaTitle string `json:"manga_title"`
	ImageURL   string `json:"image_url"`
	Caption    string `json:"caption"`
	Position   int    `json:"position"`
	IsActive   bool   `json:"is_active"`
}

type UploadResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Path         string `json:"path"`
}
