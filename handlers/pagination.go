package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Page is the envelope every paginated list response is wrapped in
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size
}

func pageURL(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

func newPage(c *gin.Context, count int64, page, size int, results interface{}) Page {
	p := Page{Count: count, Results: results}
	if int64(page*size) < count {
		p.Next = pageURL(c, page+1)
	}
	if page > 1 {
		p.Previous = pageURL(c, page-1)
	}
	return p
}
