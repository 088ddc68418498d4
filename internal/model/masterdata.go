package model

// Branch is a master-data branch code reports inherit from their author.
type Branch struct {
	Code string `gorm:"type:varchar(50);primaryKey" json:"code"`
}

// Area is a master-data area code used for routing and visibility scoping.
type Area struct {
	Code string `gorm:"type:varchar(50);primaryKey" json:"code"`
}
