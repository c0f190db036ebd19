package model

// SiteSettings is the singleton record of site-wide branding and contact
// information managed by administrators. Exactly one row exists (pk = 1).
type SiteSettings struct {
	SiteName          string `json:"site_name"`
	Tagline           string `json:"tagline,omitempty"`
	LogoKey           string `json:"logo,omitempty"`
	FaviconKey        string `json:"favicon,omitempty"`
	MetaDescription   string `json:"meta_description,omitempty"`
	MetaKeywords      string `json:"meta_keywords,omitempty"`
	OGImageKey        string `json:"og_image,omitempty"`
	ContactEmail      string `json:"contact_email,omitempty"`
	ContactPhone      string `json:"contact_phone,omitempty"`
	Address           string `json:"address,omitempty"`
	FacebookURL       string `json:"facebook_url,omitempty"`
	InstagramURL      string `json:"instagram_url,omitempty"`
	TwitterURL        string `json:"twitter_url,omitempty"`
	LinkedInURL       string `json:"linkedin_url,omitempty"`
	YoutubeURL        string `json:"youtube_url,omitempty"`
	WhatsappNumber    string `json:"whatsapp_number,omitempty"`
	GoogleAnalyticsID string `json:"google_analytics_id,omitempty"`
	FooterText        string `json:"footer_text,omitempty"`
}

// DefaultSiteSettings returns the settings used until an administrator
// saves their own.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		SiteName:        "DFS Education",
		Tagline:         "Your Gateway to International Education",
		MetaDescription: "DFS Education - Helping students achieve their dreams of studying abroad.",
		MetaKeywords:    "education, consultants, study abroad, scholarships, international students",
		FooterText:      "© DFS Education. All rights reserved.",
	}
}
