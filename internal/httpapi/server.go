// Package httpapi exposes the shelf store over a small JSON HTTP API.
//
// Routes:
//
//	GET    /authors             → every author
//	POST   /authors             → create an author
//	GET    /authors/search      → first author whose name contains ?name=
//	GET    /authors/{id}        → one author
//	PUT    /authors/{id}        → overwrite an author
//	DELETE /authors/{id}        → delete an author
//	GET    /books               → every book, author hydrated
//	POST   /books               → create a book for an existing author_id
//	GET    /books/{id}          → one book, author hydrated
//	GET    /tables              → table names present in the store
package httpapi

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"shelf/internal/orm"
)

// Server routes HTTP requests to a *orm.DB.
type Server struct {
	db     *orm.DB
	logger *log.Logger
	mux    *http.ServeMux
}

// NewServer constructs a Server with its routes. A nil logger uses
// log.Default().
func NewServer(db *orm.DB, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{db: db, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /authors", s.handleListAuthors)
	s.mux.HandleFunc("POST /authors", s.handleCreateAuthor)
	s.mux.HandleFunc("GET /authors/search", s.handleSearchAuthors)
	s.mux.HandleFunc("GET /authors/{id}", s.handleGetAuthor)
	s.mux.HandleFunc("PUT /authors/{id}", s.handleUpdateAuthor)
	s.mux.HandleFunc("DELETE /authors/{id}", s.handleDeleteAuthor)
	s.mux.HandleFunc("GET /books", s.handleListBooks)
	s.mux.HandleFunc("POST /books", s.handleCreateBook)
	s.mux.HandleFunc("GET /books/{id}", s.handleGetBook)
	s.mux.HandleFunc("GET /tables", s.handleTables)
}

func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	rows, err := orm.All(r.Context(), s.db, Authors)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(rows))
}

func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	a := &Author{Name: in.Name, Age: in.Age}
	if err := orm.Save(r.Context(), s.db, Authors, a); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleSearchAuthors(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.fail(w, r, badRequest("query parameter name is required"))
		return
	}
	a, err := orm.GetByField(r.Context(), s.db, Authors, "name", name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a, err := orm.Get(r.Context(), s.db, Authors, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	a := &Author{Model: orm.Model{ID: id}, Name: in.Name, Age: in.Age}
	if err := orm.Update(r.Context(), s.db, Authors, a); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.db.Delete(r.Context(), Authors, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	rows, err := orm.All(r.Context(), s.db, Books)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(rows))
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title     string `json:"title"`
		Published bool   `json:"published"`
		AuthorID  int64  `json:"author_id"`
	}
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	b := &Book{Title: in.Title, Published: in.Published}
	if in.AuthorID != 0 {
		a, err := orm.Get(r.Context(), s.db, Authors, in.AuthorID)
		if err != nil {
			if errors.Is(err, orm.ErrNotFound) {
				err = badRequest(fmt.Sprintf("author %d does not exist", in.AuthorID))
			}
			s.fail(w, r, err)
			return
		}
		b.Author = a
	}
	if err := orm.Save(r.Context(), s.db, Books, b); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	b, err := orm.Get(r.Context(), s.db, Books, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	names, err := s.db.Tables(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(names))
}
