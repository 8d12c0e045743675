package settings

// Defaults returns a fresh copy of the compiled-in configuration.
func Defaults() StoreSettings {
	return StoreSettings{
		SchemaVersion:   SchemaVersion,
		StoreName:       "TACO",
		StoreNameFont:   "Arial, sans-serif",
		StoreNameColor:  "#000000",
		StoreNameSize:   "24px",
		PageTitle:       "Bem-vindo à TACO",
		PageTitleFont:   "Arial, sans-serif",
		PageTitleColor:  "#000000",
		PageTitleSize:   "24px",
		PageSubtitle:    "Av. Paulista, 1000 - São Paulo, SP | Tel: (11) 9999-9999",
		MapLink:         "https://maps.google.com/?q=Av.+Paulista,+1000,+São+Paulo",
		FooterText:      "© 2025 TACO. Todos os direitos reservados.",
		HeaderColor:     "#FFFFFF",
		HeaderLinkColor: "#000000",
		BannerConfig: BannerConfig{
			ImageURL:          "https://images.unsplash.com/photo-1445205170230-053b83016050?w=1600&auto=format&fit=crop",
			Title:             "Nova Coleção 2024",
			Subtitle:          "Descubra as últimas tendências em roupas e calçados para todas as estações",
			ShowExploreButton: true,
			TextColor:         "#FFFFFF",
			ButtonColor:       "#EF4444",
		},
		HeaderLinks: HeaderLinks{
			Novidades:   true,
			Masculino:   true,
			Feminino:    true,
			Kids:        true,
			Calcados:    true,
			Acessorios:  true,
			Off:         true,
			CustomLinks: []CustomLink{},
		},
		CategoryHighlights: CategoryHighlights{
			Enabled: true,
			Title:   "Categorias em Destaque",
			Categories: []HighlightedEntry{
				{
					Name:  "Feminino",
					Image: "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=800&auto=format&fit=crop",
					Link:  "/products/feminino",
				},
				{
					Name:  "Masculino",
					Image: "https://images.unsplash.com/photo-1617196035154-1e7e6e28b0db?w=800&auto=format&fit=crop",
					Link:  "/products/masculino",
				},
				{
					Name:  "Kids",
					Image: "https://images.unsplash.com/photo-1519238359922-989348752efb?w=800&auto=format&fit=crop",
					Link:  "/products/kids",
				},
				{
					Name:  "Acessórios",
					Image: "https://images.unsplash.com/photo-1625591341337-13156895c604?w=800&auto=format&fit=crop",
					Link:  "/products/acessórios",
				},
			},
		},
		SocialMedia: SocialMedia{
			Enabled:   false,
			Instagram: SocialLink{Enabled: true, URL: "https://instagram.com/tacoficial"},
			Facebook:  SocialLink{Enabled: true, URL: "https://facebook.com/tacoficial"},
			WhatsApp:  SocialLink{Enabled: true, URL: "https://wa.me/5521999999999"},
			TikTok:    SocialLink{Enabled: false, URL: "https://tiktok.com/@tacoficial"},
			Twitter:   SocialLink{Enabled: false, URL: "https://twitter.com/tacoficial"},
			Website:   SocialLink{Enabled: false, URL: "https://taco.com.br"},
		},
	}
}
