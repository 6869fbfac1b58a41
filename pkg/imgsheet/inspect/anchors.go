package inspect

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

// Relationship types are matched by suffix so both the transitional and
// strict OOXML namespaces work.
const (
	relTypeWorksheet = "/worksheet"
	relTypeDrawing   = "/drawing"
)

type xlsxWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type xlsxRelationships struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xdrDrawing struct {
	TwoCellAnchors []xdrAnchor `xml:"twoCellAnchor"`
	OneCellAnchors []xdrAnchor `xml:"oneCellAnchor"`
}

type xdrAnchor struct {
	From xdrMarker  `xml:"from"`
	To   *xdrMarker `xml:"to"`
	Ext  *xdrExtent `xml:"ext"`
	Pic  *xdrPic    `xml:"pic"`
}

type xdrMarker struct {
	Col    int   `xml:"col"`
	ColOff int64 `xml:"colOff"`
	Row    int   `xml:"row"`
	RowOff int64 `xml:"rowOff"`
}

type xdrExtent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xdrPic struct {
	CNvPr struct {
		ID    int    `xml:"id,attr"`
		Name  string `xml:"name,attr"`
		Descr string `xml:"descr,attr"`
	} `xml:"nvPicPr>cNvPr"`
	Ext xdrExtent `xml:"spPr>xfrm>ext"`
}

// ExtractImageAnchors returns the pictures of every sheet, keyed by sheet name.
// Sheets without a drawing are absent from the result.
func ExtractImageAnchors(r *zip.Reader) (map[string][]models.ImageAnchor, error) {
	drawings, err := sheetDrawings(r)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.ImageAnchor, len(drawings))
	for sheetName, drawingPath := range drawings {
		data, err := readZipFile(r, drawingPath)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		anchors, err := parseDrawing(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", drawingPath, err)
		}
		result[sheetName] = anchors
	}
	return result, nil
}

// sheetDrawings maps sheet names to the drawing part attached to them.
func sheetDrawings(r *zip.Reader) (map[string]string, error) {
	result := make(map[string]string)

	var wb xlsxWorkbook
	if err := unmarshalZipFile(r, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	var wbRels xlsxRelationships
	if err := unmarshalZipFile(r, "xl/_rels/workbook.xml.rels", &wbRels); err != nil {
		return nil, err
	}

	sheetParts := make(map[string]string)
	for _, rel := range wbRels.Relationships {
		if strings.HasSuffix(rel.Type, relTypeWorksheet) {
			sheetParts[rel.ID] = resolveTarget("xl", rel.Target)
		}
	}

	for _, sheet := range wb.Sheets {
		sheetPath, ok := sheetParts[sheet.RID]
		if !ok {
			continue
		}
		var sheetRels xlsxRelationships
		if err := unmarshalZipFile(r, relsPath(sheetPath), &sheetRels); err != nil {
			return nil, err
		}
		for _, rel := range sheetRels.Relationships {
			if strings.HasSuffix(rel.Type, relTypeDrawing) {
				result[sheet.Name] = resolveTarget(path.Dir(sheetPath), rel.Target)
				break
			}
		}
	}

	return result, nil
}

func parseDrawing(data []byte) ([]models.ImageAnchor, error) {
	var d xdrDrawing
	if err := xml.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	var anchors []models.ImageAnchor
	for _, a := range append(d.TwoCellAnchors, d.OneCellAnchors...) {
		if a.Pic == nil {
			continue
		}
		anchor := models.ImageAnchor{
			ID:         a.Pic.CNvPr.ID,
			Name:       a.Pic.CNvPr.Name,
			AltText:    a.Pic.CNvPr.Descr,
			FromCol:    a.From.Col,
			FromRow:    a.From.Row,
			FromColOff: EMUToPixels(a.From.ColOff),
			FromRowOff: EMUToPixels(a.From.RowOff),
			W:          EMUToPixels(a.Pic.Ext.CX),
			H:          EMUToPixels(a.Pic.Ext.CY),
		}
		if a.To != nil {
			anchor.ToCol = a.To.Col
			anchor.ToRow = a.To.Row
			anchor.ToColOff = EMUToPixels(a.To.ColOff)
			anchor.ToRowOff = EMUToPixels(a.To.RowOff)
		} else {
			anchor.ToCol, anchor.ToRow = anchor.FromCol, anchor.FromRow
		}
		if a.Ext != nil && anchor.W == 0 {
			anchor.W = EMUToPixels(a.Ext.CX)
			anchor.H = EMUToPixels(a.Ext.CY)
		}
		anchors = append(anchors, anchor)
	}
	return anchors, nil
}

// readZipFile returns nil, nil when the part does not exist.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// unmarshalZipFile leaves v untouched when the part does not exist.
func unmarshalZipFile(r *zip.Reader, name string, v interface{}) error {
	data, err := readZipFile(r, name)
	if err != nil || data == nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// resolveTarget resolves a relationship target against the directory of
// the part that owns the relationship.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

// relsPath returns the relationships part of a package part,
// e.g. xl/worksheets/sheet1.xml -> xl/worksheets/_rels/sheet1.xml.rels.
func relsPath(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}
