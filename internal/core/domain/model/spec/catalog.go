package spec

import (
	"github.com/shopspring/decimal"
)

// MethodRef is a processing method as published by the reference catalog.
type MethodRef struct {
	ID   string
	Name string
}

// TestRef is a QC test as published by the reference catalog, with its
// default norm.
type TestRef struct {
	Code     string
	Name     string
	Unit     string
	NormMin  *decimal.Decimal
	NormMax  *decimal.Decimal
	NormText string
	Method   string
}

// Catalog is the read-only reference data the Freezer copies from.
type Catalog interface {
	Method(id string) (MethodRef, bool)
	Test(code string) (TestRef, bool)
}

// StaticCatalog is an in-memory Catalog loaded once per request.
type StaticCatalog struct {
	methods map[string]MethodRef
	tests   map[string]TestRef
}

func NewStaticCatalog(methods []MethodRef, tests []TestRef) *StaticCatalog {
	c := &StaticCatalog{
		methods: make(map[string]MethodRef, len(methods)),
		tests:   make(map[string]TestRef, len(tests)),
	}
	for _, m := range methods {
		c.methods[m.ID] = m
	}
	for _, t := range tests {
		c.tests[t.Code] = t
	}
	return c
}

func (c *StaticCatalog) Method(id string) (MethodRef, bool) {
	m, ok := c.methods[id]
	return m, ok
}

func (c *StaticCatalog) Test(code string) (TestRef, bool) {
	t, ok := c.tests[code]
	return t, ok
}
