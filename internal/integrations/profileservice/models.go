package profileservice

// Profile данные профиля кандидата из ProfileService
type Profile struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"ownerId"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	Headline    string `json:"headline,omitempty"`
	IsPublished bool   `json:"isPublished"`
}

// IsOwnedBy проверяет, что профиль принадлежит пользователю
func (p *Profile) IsOwnedBy(userID int64) bool {
	return p.OwnerID == userID
}
