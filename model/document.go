/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"errors"
	"sync"

	"github.com/paintbox/pdfcore/common"
	"github.com/paintbox/pdfcore/core"
)

// Document is the in-memory object model of a PDF file: a page tree walked
// on top of an ObjectSource. It never touches the lexical/cross-reference
// layer (encryption, repair, trailer bookkeeping) directly - those concerns
// belong to whatever constructs the ObjectSource and hands Document its
// catalog dictionary.
type Document struct {
	source  core.ObjectSource
	catalog *core.PdfObjectDictionary

	pageList []*core.PdfIndirectObject
	PageList []*PdfPage

	// traversed tracks objects already walked by traverseObjectData, to
	// guard against cyclic references while eagerly resolving subtrees.
	traversed map[core.PdfObject]struct{}

	modelManager *modelManager

	mu        sync.Mutex
	fontCache map[core.PdfObject]*PdfFont
	csCache   map[core.PdfObject]PdfColorspace
}

// NewDocument builds a Document rooted at catalog, resolving objects through
// source. It eagerly walks the page tree (Pages -> Pages -> ... -> Page).
func NewDocument(source core.ObjectSource, catalog *core.PdfObjectDictionary) (*Document, error) {
	if catalog == nil {
		return nil, errors.New("missing catalog dictionary")
	}

	doc := &Document{
		source:       source,
		catalog:      catalog,
		traversed:    map[core.PdfObject]struct{}{},
		modelManager: newModelManager(),
		fontCache:    map[core.PdfObject]*PdfFont{},
		csCache:      map[core.PdfObject]PdfColorspace{},
	}

	if err := doc.loadPages(); err != nil {
		return nil, err
	}

	return doc, nil
}

// loadPages walks the catalog's /Pages tree, populating pageList/PageList.
func (doc *Document) loadPages() error {
	obj := doc.catalog.Get("Pages")
	pagesContainer, ok := core.GetIndirect(obj)
	if !ok {
		return errors.New("pages attribute missing or not an indirect object")
	}

	traversedPageNodes := map[core.PdfObject]struct{}{}
	return doc.buildPageList(pagesContainer, nil, traversedPageNodes)
}

// buildPageList recursively walks the page tree, appending each leaf Page
// node to doc.pageList/PageList in document order.
func (doc *Document) buildPageList(node *core.PdfIndirectObject, parent *core.PdfIndirectObject, traversedPageNodes map[core.PdfObject]struct{}) error {
	if node == nil {
		return nil
	}

	if _, alreadyTraversed := traversedPageNodes[node]; alreadyTraversed {
		common.Log.Debug("Cyclic recursion, skipping (%v)", node.ObjectNumber)
		return nil
	}
	traversedPageNodes[node] = struct{}{}

	nodeDict, ok := node.PdfObject.(*core.PdfObjectDictionary)
	if !ok {
		return errors.New("node not a dictionary")
	}

	objType, ok := nodeDict.Get("Type").(*core.PdfObjectName)
	if !ok {
		if nodeDict.Get("Kids") == nil {
			return errors.New("node missing Type (Required)")
		}
		common.Log.Debug("ERROR: node missing Type, but has Kids. Assuming Pages node.")
		objType = core.MakeName("Pages")
		nodeDict.Set("Type", objType)
	}

	if *objType == "Page" {
		p, err := doc.newPdfPageFromDict(nodeDict)
		if err != nil {
			return err
		}
		p.setContainer(node)

		if parent != nil {
			nodeDict.Set("Parent", parent)
		}
		doc.pageList = append(doc.pageList, node)
		doc.PageList = append(doc.PageList, p)
		return nil
	}
	if *objType != "Pages" {
		common.Log.Debug("ERROR: Table of content containing non Page/Pages object! (%s)", *objType)
		return errors.New("table of content containing non Page/Pages object")
	}

	if parent != nil {
		nodeDict.Set("Parent", parent)
	}

	if err := doc.traverseObjectData(node); err != nil {
		return err
	}

	kidsObj := core.TraceToDirectObject(nodeDict.Get("Kids"))
	kids, ok := kidsObj.(*core.PdfObjectArray)
	if !ok {
		return errors.New("invalid Kids object")
	}

	for idx, child := range kids.Elements() {
		childInd, ok := core.GetIndirect(child)
		if !ok {
			common.Log.Debug("ERROR: Page not indirect object - (%s)", child)
			return errors.New("page not indirect object")
		}
		kids.Set(idx, childInd)
		if err := doc.buildPageList(childInd, node, traversedPageNodes); err != nil {
			return err
		}
	}

	return nil
}

// traverseObjectData recursively resolves references within o, ensuring the
// full subtree is reachable without further round-trips to the source.
func (doc *Document) traverseObjectData(o core.PdfObject) error {
	return core.ResolveReferencesDeep(o, doc.traversed)
}

// GetNumPages returns the number of pages in the document.
func (doc *Document) GetNumPages() int {
	return len(doc.pageList)
}

// GetPage returns the Page model for the specified 1-based page number.
func (doc *Document) GetPage(pageNumber int) (*PdfPage, error) {
	idx := pageNumber - 1
	if idx < 0 {
		return nil, errors.New("page numbering must start at 1")
	}
	if idx >= len(doc.PageList) {
		return nil, errors.New("invalid page number (page count too short)")
	}
	return doc.PageList[idx], nil
}

// PageFromIndirectObject returns the Page and 1-based page number for a
// given page tree leaf node.
func (doc *Document) PageFromIndirectObject(ind *core.PdfIndirectObject) (*PdfPage, int, error) {
	if len(doc.PageList) != len(doc.pageList) {
		return nil, 0, errors.New("page list invalid")
	}
	for i, pageInd := range doc.pageList {
		if pageInd == ind {
			return doc.PageList[i], i + 1, nil
		}
	}
	return nil, 0, errors.New("page not found")
}

// GetOCProperties returns the optional content properties dictionary, if any.
func (doc *Document) GetOCProperties() (core.PdfObject, error) {
	obj := core.ResolveReference(doc.catalog.Get("OCProperties"))
	if obj == nil {
		return nil, nil
	}
	if err := doc.traverseObjectData(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// GetNamedDestinations returns the Names entry in the PDF catalog.
// See section 12.3.2.3 "Named Destinations" (p. 367 PDF32000_2008).
func (doc *Document) GetNamedDestinations() (core.PdfObject, error) {
	obj := core.ResolveReference(doc.catalog.Get("Names"))
	if obj == nil {
		return nil, nil
	}
	if err := doc.traverseObjectData(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// GetPageLabels returns the PageLabels entry in the PDF catalog.
// See section 12.4.2 "Page Labels" (p. 382 PDF32000_2008).
func (doc *Document) GetPageLabels() (core.PdfObject, error) {
	obj := core.ResolveReference(doc.catalog.Get("PageLabels"))
	if obj == nil {
		return nil, nil
	}
	if err := doc.traverseObjectData(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// cachedFont returns the cached PdfFont for key, building and storing it
// with build on first touch. Guarded by a single coarse mutex, matching
// the expected access pattern: rare inserts, frequent reads.
func (doc *Document) cachedFont(key core.PdfObject, build func() (*PdfFont, error)) (*PdfFont, error) {
	doc.mu.Lock()
	if font, ok := doc.fontCache[key]; ok {
		doc.mu.Unlock()
		return font, nil
	}
	doc.mu.Unlock()

	font, err := build()
	if err != nil {
		return nil, err
	}

	doc.mu.Lock()
	doc.fontCache[key] = font
	doc.mu.Unlock()
	return font, nil
}

// cachedColorspace returns the cached PdfColorspace for key, building and
// storing it on first touch.
func (doc *Document) cachedColorspace(key core.PdfObject, build func() (PdfColorspace, error)) (PdfColorspace, error) {
	doc.mu.Lock()
	if cs, ok := doc.csCache[key]; ok {
		doc.mu.Unlock()
		return cs, nil
	}
	doc.mu.Unlock()

	cs, err := build()
	if err != nil {
		return nil, err
	}

	doc.mu.Lock()
	doc.csCache[key] = cs
	doc.mu.Unlock()
	return cs, nil
}
