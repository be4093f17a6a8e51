package edge

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	HandlerTemplate = "origin_host.js.tmpl"
	// HandlerName is the Lambda handler of the rendered source when deployed as index.js.
	HandlerName = "index.handler"
)

//go:embed templates/*.tmpl
var tplFS embed.FS

type sourceData struct {
	HeaderName string
	HeaderKey  string
}

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

func handlerTemplate() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New(HandlerTemplate).
			Funcs(sprig.TxtFuncMap()).
			ParseFS(tplFS, "templates/"+HandlerTemplate)
		if parseErr != nil {
			parseErr = fmt.Errorf("parsing template %q: %w", HandlerTemplate, parseErr)
		}
	})
	return parsed, parseErr
}

// Source renders the Node.js handler deployed to Lambda@Edge.
func Source() (string, error) {
	t, err := handlerTemplate()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, sourceData{HeaderName: HostHeaderName, HeaderKey: HostHeaderKey}); err != nil {
		return "", fmt.Errorf("executing template %q: %w", HandlerTemplate, err)
	}
	return buf.String(), nil
}
