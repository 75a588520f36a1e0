package httpapi

import "shelf/internal/orm"

// Author is a stored book author.
type Author struct {
	orm.Model
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Book is a stored book. Author is hydrated on every read.
type Book struct {
	orm.Model
	Title     string  `json:"title"`
	Published bool    `json:"published"`
	Author    *Author `json:"author"`
}

var (
	Authors = orm.MustDefine("Author",
		orm.Column("name", func(a *Author) *string { return &a.Name }),
		orm.Column("age", func(a *Author) *int { return &a.Age }),
	)
	Books = orm.MustDefine("Book",
		orm.Column("title", func(b *Book) *string { return &b.Title }),
		orm.Column("published", func(b *Book) *bool { return &b.Published }),
		orm.ForeignKey("author", Authors, func(b *Book) **Author { return &b.Author }),
	)
)

// Schemas lists the tables the server needs, for DB.CreateAll.
func Schemas() []orm.Schema {
	return []orm.Schema{Authors, Books}
}
