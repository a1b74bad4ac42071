package http

import (
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-cms-rest/internal/posts"
	"github.com/goliatone/go-cms-rest/internal/resources"
)

var metaQueryParam = regexp.MustCompile(`^meta_query\[(\d+)\]\[(key|value|compare)\]$`)

var errPageMin = validation.NewError("validation_page_min", "must be no less than 1")

type listQuery struct {
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
	pageSet bool
}

// Validate checks paging bounds. A per_page of 0 selects the default page
// size; an omitted page selects page 1, an explicit one must be at least 1.
func (q listQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.PerPage, validation.Min(-1)),
		validation.Field(&q.Page, validation.When(q.pageSet, validation.By(func(value any) error {
			if page, _ := value.(int); page < 1 {
				return errPageMin
			}
			return nil
		}))),
	)
}

func parseListParams(r *http.Request) (resources.ListParams, error) {
	values := r.URL.Query()
	var (
		query listQuery
		err   error
	)
	if query.PerPage, err = intParam(values, "per_page"); err != nil {
		return resources.ListParams{}, err
	}
	if query.Page, err = intParam(values, "page"); err != nil {
		return resources.ListParams{}, err
	}
	query.pageSet = strings.TrimSpace(values.Get("page")) != ""
	if err := query.Validate(); err != nil {
		return resources.ListParams{}, resources.BadRequest(err.Error())
	}
	meta, err := parseMetaQuery(values)
	if err != nil {
		return resources.ListParams{}, err
	}
	return resources.ListParams{PerPage: query.PerPage, Page: query.Page, Meta: meta}, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, resources.BadRequest(name + ": must be an integer.")
	}
	return value, nil
}

// parseMetaQuery reads meta_query[N][key|value|compare] parameters into
// clauses ordered by N.
func parseMetaQuery(values url.Values) ([]posts.MetaClause, error) {
	byIndex := map[int]*posts.MetaClause{}
	for name := range values {
		match := metaQueryParam.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, resources.BadRequest("meta_query: invalid index.")
		}
		clause, ok := byIndex[index]
		if !ok {
			clause = &posts.MetaClause{}
			byIndex[index] = clause
		}
		value := values.Get(name)
		switch match[2] {
		case "key":
			clause.Key = strings.TrimSpace(value)
		case "value":
			clause.Value = value
		case "compare":
			clause.Compare = value
		}
	}
	if len(byIndex) == 0 {
		return nil, nil
	}

	indexes := make([]int, 0, len(byIndex))
	for index := range byIndex {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	clauses := make([]posts.MetaClause, 0, len(indexes))
	for _, index := range indexes {
		clause := *byIndex[index]
		if clause.Key == "" {
			return nil, resources.BadRequest("meta_query[" + strconv.Itoa(index) + "][key]: cannot be blank.")
		}
		if !posts.IsSupportedCompare(clause.Compare) {
			return nil, resources.BadRequest("meta_query[" + strconv.Itoa(index) + "][compare]: unsupported operator.")
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func idParam(r *http.Request) (*int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, resources.BadRequest("")
	}
	return &id, nil
}

func stringParam(r *http.Request, name string) *string {
	value := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(value); err == nil {
		value = decoded
	}
	return &value
}
