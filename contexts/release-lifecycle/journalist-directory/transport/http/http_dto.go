package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type UpsertContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	SocialMedia string `json:"social_media"`
	MediaOutlet string `json:"media_outlet"`
	Category    string `json:"category"`
	Region      string `json:"region"`
}

type MatchRequest struct {
	ReleaseID   string `json:"release_id"`
	MediaOutlet string `json:"media_outlet"`
	Category    string `json:"category"`
	Region      string `json:"region"`
}

type ContactDTO struct {
	ContactID   string `json:"contact_id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	SocialMedia string `json:"social_media,omitempty"`
	MediaOutlet string `json:"media_outlet,omitempty"`
	Category    string `json:"category,omitempty"`
	Region      string `json:"region,omitempty"`
}

type RankedContactDTO struct {
	Contact ContactDTO `json:"contact"`
	Overlap int        `json:"overlap"`
}

type ContactResponse struct {
	Contact ContactDTO `json:"contact"`
}

type ListContactsResponse struct {
	Items  []ContactDTO `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type MatchResponse struct {
	Items []RankedContactDTO `json:"items"`
}
