package model

// Translation is the result of translating a name into a reference language.
type Translation struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}
