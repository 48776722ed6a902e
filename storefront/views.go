package storefront

import (
	"html/template"
	"math"
	"strconv"
	"strings"
)

var funcs = template.FuncMap{"money": formatMoney}

var (
	swatchesTmpl = template.Must(template.New("swatches").Funcs(funcs).Parse(
		`{{range .Product.Colors}}<div class="color-swatch{{if eq .Name $.SelectedColor.Name}} selected{{end}}" style="background-color: {{.Hex}}" data-color="{{.Name}}" title="{{.Name}}"></div>
{{end}}`))

	materialsTmpl = template.Must(template.New("materials").Funcs(funcs).Parse(
		`{{range .Product.Materials}}<div class="material-option{{if eq .Name $.SelectedMaterial.Name}} selected{{end}}" data-material="{{.Name}}">{{.Name}}{{if gt .Price 0.0}} (+{{money .Price}}){{end}}</div>
{{end}}`))

	summaryTmpl = template.Must(template.New("summary").Funcs(funcs).Parse(
		`<div><strong>Product:</strong> {{.Product.Name}}</div>
<div><strong>Base Price:</strong> {{money .Product.BasePrice}}</div>
<div><strong>Selected Color:</strong> {{.SelectedColor.Name}}</div>
<div><strong>Selected Material:</strong> {{.SelectedMaterial.Name}}</div>
`))

	pageTmpl = template.Must(template.New("page").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.State.Product.Name}} | 3D Product Customizer</title>
</head>
<body>
{{if .State.Loading}}<div class="loading"><span>Loading...</span></div>{{else}}
<div id="viewer-container" data-model-url="{{.State.Product.ModelURL}}"><canvas id="three-canvas"></canvas></div>
<div id="color-swatches">{{.Swatches}}</div>
<div id="material-options">{{.Materials}}</div>
<div id="product-details">{{.Summary}}</div>
<div id="total-price">{{money .State.TotalPrice}}</div>
<form id="add-to-cart" method="post" action="{{.CartAction}}">
<input type="hidden" name="selectedColor" value="{{.State.SelectedColor.Name}}">
<input type="hidden" name="selectedMaterial" value="{{.State.SelectedMaterial.Name}}">
<button type="submit">Add to cart</button>
</form>{{end}}
</body>
</html>
`))

	errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>3D Product Customizer</title></head>
<body>
<div class="error"><h1>{{.Message}}</h1>{{if .Note}}<p>{{.Note}}</p>{{end}}</div>
</body>
</html>
`))
)

// RenderSwatches renders the color swatch list for st.
func RenderSwatches(st State) (template.HTML, error) {
	return render(swatchesTmpl, st)
}

// RenderMaterials renders the material option list for st.
func RenderMaterials(st State) (template.HTML, error) {
	return render(materialsTmpl, st)
}

// RenderSummary renders the product details panel for st.
func RenderSummary(st State) (template.HTML, error) {
	return render(summaryTmpl, st)
}

// Fragments are the three views of one state.
type Fragments struct {
	Swatches   template.HTML `json:"swatches"`
	Materials  template.HTML `json:"materials"`
	Summary    template.HTML `json:"summary"`
	TotalPrice float64       `json:"totalPrice"`
}

// RenderFragments renders every fragment of st.
func RenderFragments(st State) (Fragments, error) {
	var (
		f   = Fragments{TotalPrice: st.TotalPrice}
		err error
	)
	if f.Swatches, err = RenderSwatches(st); err != nil {
		return Fragments{}, err
	}
	if f.Materials, err = RenderMaterials(st); err != nil {
		return Fragments{}, err
	}
	if f.Summary, err = RenderSummary(st); err != nil {
		return Fragments{}, err
	}
	return f, nil
}

func render(t *template.Template, data interface{}) (template.HTML, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	// output of html/template is already escaped
	return template.HTML(b.String()), nil
}

func formatMoney(v float64) string {
	s := "$" + strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if v < 0 {
		return "-" + s
	}
	return s
}
