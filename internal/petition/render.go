package petition

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"cleanslate/internal/crecord"
	dErrors "cleanslate/pkg/domain-errors"
)

// renderData is the namespace a document template executes against.
type renderData struct {
	Petition   Petition
	Client     crecord.Person
	Attorney   crecord.Attorney
	Cases      []crecord.Case
	Date       string
	IFPMessage string
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// Render fills a document template with a petition's client, attorney, and
// cases. The date is the filing date printed on the document.
func Render(tmpl DocumentTemplate, p Petition, date time.Time) ([]byte, error) {
	parsed, err := template.New(tmpl.Name).Funcs(templateFuncs).Parse(tmpl.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput,
			fmt.Sprintf("template %q does not parse", tmpl.Name))
	}
	var buf bytes.Buffer
	err = parsed.Execute(&buf, renderData{
		Petition:   p,
		Client:     p.Client,
		Attorney:   p.Attorney,
		Cases:      p.Cases,
		Date:       date.Format("January 2, 2006"),
		IFPMessage: p.IFPMessage,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput,
			fmt.Sprintf("template %q failed to render", tmpl.Name))
	}
	return buf.Bytes(), nil
}

// Document is one rendered petition, ready for packaging.
type Document struct {
	Name string
	Body []byte
}

// PackageName names the archive of a client's rendered petitions.
func PackageName(client crecord.Person) string {
	last := strings.ReplaceAll(strings.TrimSpace(client.LastName), " ", "")
	if last == "" {
		last = "Client"
	}
	return fmt.Sprintf("ExpungementsFor%s.zip", last)
}

// Package zips rendered documents into a single archive. Duplicate file
// names are disambiguated with a counter so two petitions on the same docket
// don't clobber each other.
func Package(documents []Document) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	seen := map[string]int{}
	for _, doc := range documents {
		name := doc.Name
		if n := seen[doc.Name]; n > 0 {
			ext := ""
			if i := strings.LastIndex(name, "."); i >= 0 {
				name, ext = name[:i], name[i:]
			}
			name = fmt.Sprintf("%s_%d%s", name, n, ext)
		}
		seen[doc.Name]++

		f, err := archive.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := f.Write(doc.Body); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("close zip archive: %w", err)
	}
	return buf.Bytes(), nil
}
