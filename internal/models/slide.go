package models

// HeroSlide is one panel of the homepage slider
type HeroSlide struct {
	ID          string  `json:"id"`
	Subtitle    string  `json:"subtitle"`
	TitleLine1  string  `json:"titleLine1"`
	TitleLine2  string  `json:"titleLine2"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	SortOrder   int     `json:"sortOrder"`
}

// HeroSlideInput is the admin payload for a slide
type HeroSlideInput struct {
	Subtitle    string `json:"subtitle"`
	TitleLine1  string `json:"titleLine1"`
	TitleLine2  string `json:"titleLine2"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}
