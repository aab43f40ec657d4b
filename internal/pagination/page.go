// Package pagination descreve páginas ordenadas no formato usado pela API
// (pag/ord/dir na entrada, content/totalElements/... na saída).
package pagination

import (
	"fmt"
	"math"
	"strings"
)

type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

const (
	DefaultSortField = "id"
	DefaultDirection = DESC
)

// ParseDirection aceita asc/desc em qualquer caixa; vazio vira DESC.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultDirection, nil
	case string(ASC):
		return ASC, nil
	case string(DESC):
		return DESC, nil
	default:
		return "", fmt.Errorf("direção de ordenação inválida: %q", s)
	}
}

// Sign devolve 1 ou -1, no formato que o mongo espera em sort.
func (d Direction) Sign() int {
	if d == ASC {
		return 1
	}
	return -1
}

type PageRequest struct {
	Page      int
	Size      int
	SortField string
	Direction Direction
}

func NewPageRequest(page, size int, sortField string, dir Direction) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 1
	}
	// Skip e Page+1 não podem estourar; uma página além do fim só volta vazia
	maxPage := math.MaxInt64 / int64(size)
	if maxPage > math.MaxInt32 {
		maxPage = math.MaxInt32
	}
	if int64(page) > maxPage {
		page = int(maxPage)
	}
	if strings.TrimSpace(sortField) == "" {
		sortField = DefaultSortField
	}
	if dir != ASC && dir != DESC {
		dir = DefaultDirection
	}
	return PageRequest{Page: page, Size: size, SortField: sortField, Direction: dir}
}

func (p PageRequest) Skip() int64  { return int64(p.Page) * int64(p.Size) }
func (p PageRequest) Limit() int64 { return int64(p.Size) }

type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
	Sort             Sort  `json:"sort"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		n := total / int64(req.Size)
		if total%int64(req.Size) != 0 {
			n++
		}
		pages = int(n)
	}
	return Page[T]{
		Content:          content,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		TotalElements:    total,
		TotalPages:       pages,
		First:            req.Page == 0,
		Last:             req.Page+1 >= pages,
		Empty:            len(content) == 0,
		Sort:             Sort{Field: req.SortField, Direction: req.Direction},
	}
}

// Map converte o conteúdo mantendo os metadados da página.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, fn(v))
	}
	return Page[U]{
		Content:          out,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: p.NumberOfElements,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		First:            p.First,
		Last:             p.Last,
		Empty:            p.Empty,
		Sort:             p.Sort,
	}
}
