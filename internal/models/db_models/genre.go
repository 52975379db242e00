package db_models

type Genre struct {
	BaseModel
	Name  string `gorm:"unique"`
	Slug  string `gorm:"unique"`
	Manga []Manga `gorm:"many2many:manga_genres"`
}
