package server

import (
	"html/template"

	"github.com/san-kum/seiqr/internal/controller"
)

type sliderView struct {
	controller.Slider
	Value float64
}

type pageData struct {
	Header  template.HTML
	Sliders []sliderView
	Status  string
	PlotURL template.URL
}

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>SEIQR</title>
<style>
body { font-family: sans-serif; margin: 2em; }
label { display: inline-block; width: 24em; }
.status { font-size: 1.4em; font-weight: bold; margin: 1em 0; }
</style>
</head>
<body>
{{if .Header}}<div class="header">{{.Header}}</div>{{end}}
<form method="get" action="/">
{{range .Sliders}}<div>
<label for="{{.Name}}">{{.Label}}</label>
<input type="range" id="{{.Name}}" name="{{.Name}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}" onchange="this.form.submit()">
<output>{{.Value}}</output>
</div>
{{end}}<noscript><button type="submit">Run</button></noscript>
</form>
<div class="status">{{.Status}}</div>
<img src="{{.PlotURL}}" alt="SEIQR compartments">
</body>
</html>
`))

func newPageData(header string, in controller.Inputs, status string) pageData {
	views := make([]sliderView, len(controller.Sliders))
	for i, s := range controller.Sliders {
		views[i] = sliderView{Slider: s, Value: in[s.Name]}
	}
	return pageData{
		Header:  template.HTML(header),
		Sliders: views,
		Status:  status,
		PlotURL: template.URL("/api/plot.svg?" + Query(in).Encode()),
	}
}
