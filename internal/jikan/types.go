// Package jikan is a small client for the Jikan v4 (MyAnimeList) REST API.
package jikan

// ImageURLs holds the renditions Jikan serves for one image format.
type ImageURLs struct {
	ImageURL      string `json:"image_url,omitempty"`
	SmallImageURL string `json:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty"`
}

// Images groups the jpg and webp renditions of a picture.
type Images struct {
	JPG  ImageURLs `json:"jpg"`
	WebP ImageURLs `json:"webp"`
}

// Best returns the largest available URL, preferring jpg. Empty if none.
func (i Images) Best() string {
	for _, u := range []string{i.JPG.LargeImageURL, i.JPG.ImageURL, i.WebP.LargeImageURL, i.WebP.ImageURL} {
		if u != "" {
			return u
		}
	}
	return ""
}

// Pagination is the per-response paging metadata supplied by the API.
type Pagination struct {
	CurrentPage     int  `json:"current_page"`
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
}

// MediaRef is the compact anime/manga reference embedded in a character.
type MediaRef struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Images Images `json:"images"`
}

// AnimeAppearance is one anime a character appears in.
type AnimeAppearance struct {
	Role  string   `json:"role"`
	Anime MediaRef `json:"anime"`
}

// MangaAppearance is one manga a character appears in.
type MangaAppearance struct {
	Role  string   `json:"role"`
	Manga MediaRef `json:"manga"`
}

// Person is a voice actor.
type Person struct {
	MalID int    `json:"mal_id"`
	URL   string `json:"url"`
	Name  string `json:"name"`
}

// Voice is one voice-acting credit for a character.
type Voice struct {
	Language string `json:"language"`
	Person   Person `json:"person"`
}

// Character is a MyAnimeList character. Only MalID and Name are guaranteed;
// the nested appearance lists are only populated by the /full endpoint.
type Character struct {
	MalID     int               `json:"mal_id"`
	URL       string            `json:"url,omitempty"`
	Name      string            `json:"name"`
	NameKanji string            `json:"name_kanji,omitempty"`
	Images    Images            `json:"images"`
	Favorites int               `json:"favorites,omitempty"`
	Nicknames []string          `json:"nicknames,omitempty"`
	About     string            `json:"about,omitempty"`
	Anime     []AnimeAppearance `json:"anime,omitempty"`
	Manga     []MangaAppearance `json:"manga,omitempty"`
	Voices    []Voice           `json:"voices,omitempty"`
}

// AnimeIDs returns the ids of every anime the character appears in, in
// response order.
func (c Character) AnimeIDs() []int {
	ids := make([]int, 0, len(c.Anime))
	for _, a := range c.Anime {
		ids = append(ids, a.Anime.MalID)
	}
	return ids
}

// Genre is an anime genre tag.
type Genre struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

// Anime is the detail record returned by /anime/{id}.
type Anime struct {
	MalID         int      `json:"mal_id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	TitleEnglish  string   `json:"title_english,omitempty"`
	TitleJapanese string   `json:"title_japanese,omitempty"`
	Images        Images   `json:"images"`
	Type          string   `json:"type,omitempty"`
	Episodes      int      `json:"episodes,omitempty"`
	Status        string   `json:"status,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	Year          int      `json:"year,omitempty"`
	Synopsis      string   `json:"synopsis,omitempty"`
	Genres        []Genre  `json:"genres,omitempty"`
}

// Page is one page of characters, from either the listing or a search.
type Page struct {
	Characters []Character
	Pagination *Pagination
}

// envelope is the {data, pagination} wrapper every Jikan response uses.
type envelope[T any] struct {
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
