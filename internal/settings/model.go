package settings

// SchemaVersion is stamped on every saved document. Older documents are
// upgraded on read by merging them over Defaults.
const SchemaVersion = 1

// StoreSettings is the single storefront configuration document.
type StoreSettings struct {
	SchemaVersion      int                `json:"schemaVersion" validate:"gte=0"`
	StoreName          string             `json:"storeName" validate:"max=120"`
	StoreNameFont      string             `json:"storeNameFont" validate:"max=120"`
	StoreNameColor     string             `json:"storeNameColor" validate:"max=32"`
	StoreNameSize      string             `json:"storeNameSize" validate:"max=16"`
	PageTitle          string             `json:"pageTitle" validate:"max=200"`
	PageTitleFont      string             `json:"pageTitleFont" validate:"max=120"`
	PageTitleColor     string             `json:"pageTitleColor" validate:"max=32"`
	PageTitleSize      string             `json:"pageTitleSize" validate:"max=16"`
	PageSubtitle       string             `json:"pageSubtitle" validate:"max=400"`
	MapLink            string             `json:"mapLink" validate:"max=2048"`
	FooterText         string             `json:"footerText" validate:"max=400"`
	BannerConfig       BannerConfig       `json:"bannerConfig"`
	HeaderLinks        HeaderLinks        `json:"headerLinks"`
	HeaderColor        string             `json:"headerColor" validate:"max=32"`
	HeaderLinkColor    string             `json:"headerLinkColor" validate:"max=32"`
	CategoryHighlights CategoryHighlights `json:"categoryHighlights"`
	SocialMedia        SocialMedia        `json:"socialMedia"`
}

type BannerConfig struct {
	ImageURL          string `json:"imageUrl"`
	Title             string `json:"title" validate:"max=200"`
	Subtitle          string `json:"subtitle" validate:"max=400"`
	ShowExploreButton bool   `json:"showExploreButton"`
	TextColor         string `json:"textColor" validate:"max=32"`
	ButtonColor       string `json:"buttonColor" validate:"max=32"`
}

// HeaderLinks toggles the built-in navigation entries and lists custom ones.
type HeaderLinks struct {
	Novidades   bool         `json:"novidades"`
	Masculino   bool         `json:"masculino"`
	Feminino    bool         `json:"feminino"`
	Kids        bool         `json:"kids"`
	Calcados    bool         `json:"calcados"`
	Acessorios  bool         `json:"acessorios"`
	Off         bool         `json:"off"`
	CustomLinks []CustomLink `json:"customLinks" validate:"dive"`
}

// CustomLink is an admin-defined header entry. Enabled links double as product categories.
type CustomLink struct {
	Label   string `json:"label" validate:"max=80"`
	Enabled bool   `json:"enabled"`
}

type CategoryHighlights struct {
	Enabled    bool               `json:"enabled"`
	Title      string             `json:"title" validate:"max=200"`
	Categories []HighlightedEntry `json:"categories" validate:"dive"`
}

type HighlightedEntry struct {
	Name  string `json:"name" validate:"max=80"`
	Image string `json:"image"`
	Link  string `json:"link" validate:"max=2048"`
}

type SocialMedia struct {
	Enabled   bool       `json:"enabled"`
	Instagram SocialLink `json:"instagram"`
	Facebook  SocialLink `json:"facebook"`
	WhatsApp  SocialLink `json:"whatsapp"`
	TikTok    SocialLink `json:"tiktok"`
	Twitter   SocialLink `json:"twitter"`
	Website   SocialLink `json:"website"`
}

type SocialLink struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url" validate:"max=2048"`
}
