// Package views 推荐结果的服务端渲染和展示槽位状态
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"mrmelo_sanctuary/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexSection 首页中一种内容类型的列表
type IndexSection struct {
	Type  models.ContentType
	Label string
	Items []models.ContentItem
}

// IndexPage GET /explore
type IndexPage struct {
	Sections []IndexSection
}

// ExplorePage GET /explore/{contentType}/{id}
type ExplorePage struct {
	Focal  models.ContentItem
	State  State
	Busy   bool
	Report *models.RecommendationReport
	Error  string
	Notice string
}

// Renderer 基于 html/template 的页面渲染
type Renderer struct {
	index   *template.Template
	explore *template.Template
	report  *template.Template
}

var funcs = template.FuncMap{
	"clampPercent": func(v int) int {
		return max(0, min(100, v))
	},
}

// NewRenderer 解析内嵌模板
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}

	index, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	explore, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/explore.html")
	if err != nil {
		return nil, fmt.Errorf("parse explore template: %w", err)
	}

	return &Renderer{index: index, explore: explore, report: base}, nil
}

// RenderIndex 渲染首页
func (r *Renderer) RenderIndex(w io.Writer, page IndexPage) error {
	return render(w, r.index, "layout", page)
}

// RenderExplore 渲染焦点内容页
func (r *Renderer) RenderExplore(w io.Writer, page ExplorePage) error {
	return render(w, r.explore, "layout", page)
}

// RenderReport 只渲染报告片段
func (r *Renderer) RenderReport(w io.Writer, report *models.RecommendationReport) error {
	return render(w, r.report, "report", report)
}

// render 先写入缓冲区，模板出错时不会输出半个页面
func render(w io.Writer, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// SectionLabel 内容类型的展示名称
func SectionLabel(t models.ContentType) string {
	switch t {
	case models.ContentWriting:
		return "Writings"
	case models.ContentRanking:
		return "Rankings"
	case models.ContentRoundtable:
		return "Roundtables"
	case models.ContentMedia:
		return "Media"
	}
	return string(t)
}
