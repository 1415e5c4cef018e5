package postgresadapter

import "pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"

type contactModel struct {
	ContactID   string `gorm:"column:contact_id;primaryKey"`
	Name        string `gorm:"column:name;index"`
	Email       string `gorm:"column:email"`
	Phone       string `gorm:"column:phone"`
	Website     string `gorm:"column:website"`
	SocialMedia string `gorm:"column:social_media"`
	MediaOutlet string `gorm:"column:media_outlet"`
	OutletKey   string `gorm:"column:outlet_key;index"`
	Category    string `gorm:"column:category"`
	Region      string `gorm:"column:region"`
}

func (contactModel) TableName() string {
	return "journalist_contacts"
}

func contactModelFromEntity(item entities.JournalistContact) contactModel {
	return contactModel{
		ContactID:   item.ContactID,
		Name:        item.Name,
		Email:       item.Email,
		Phone:       item.Phone,
		Website:     item.Website,
		SocialMedia: item.SocialMedia,
		MediaOutlet: item.MediaOutlet,
		OutletKey:   outletKey(item.MediaOutlet),
		Category:    item.Category,
		Region:      item.Region,
	}
}

func (m contactModel) toEntity() entities.JournalistContact {
	return entities.JournalistContact{
		ContactID:   m.ContactID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Website:     m.Website,
		SocialMedia: m.SocialMedia,
		MediaOutlet: m.MediaOutlet,
		Category:    m.Category,
		Region:      m.Region,
	}
}
