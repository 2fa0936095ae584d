package fixtures

// Trend direction for keyword and metric rows.
const (
	TrendUp   = "up"
	TrendDown = "down"
)

// Project is a tracked brand.
type Project struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Domain          string `json:"domain"`
	VisibilityScore int    `json:"visibility_score"`
	CreatedAt       string `json:"created_at"`
}

// TrendPoint is one labelled score on a trend chart.
type TrendPoint struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// KeywordPerformance is a keyword's visibility and direction.
type KeywordPerformance struct {
	Name       string `json:"name"`
	Visibility int    `json:"visibility"`
	Trend      string `json:"trend"`
}

// Metric is a headline figure on the dashboard.
type Metric struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Change      string `json:"change"`
	Trend       string `json:"trend"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// ModelScore is one AI model's result within a scan.
type ModelScore struct {
	Name           string `json:"name"`
	MentionRate    int    `json:"mention_rate"`
	SentimentScore int    `json:"sentiment_score"`
}

// CompetitorScore is a brand's visibility relative to its competitors.
type CompetitorScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ScanResult is the outcome of scanning a project across AI models.
type ScanResult struct {
	ID              string               `json:"id"`
	ProjectID       string               `json:"project_id"`
	ProjectName     string               `json:"project_name"`
	Date            string               `json:"date"`
	Models          []string             `json:"models"`
	MentionRate     int                  `json:"mention_rate"`
	SentimentScore  int                  `json:"sentiment_score"`
	KeywordRanking  []KeywordPerformance `json:"keyword_ranking"`
	ModelComparison []ModelScore         `json:"model_comparison"`
	Competitors     []CompetitorScore    `json:"competitors"`
}

// ReportPoint is one month of a report's trend table.
type ReportPoint struct {
	Month      string `json:"month"`
	Visibility int    `json:"visibility"`
	Mentions   int    `json:"mentions"`
	Sentiment  int    `json:"sentiment"`
}

// Report is a generated visibility report.
type Report struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"project_id"`
	ProjectName string        `json:"project_name"`
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	Type        string        `json:"type"`
	TrendData   []ReportPoint `json:"trend_data"`
	Summary     string        `json:"summary"`
}

// OptimizationType is the kind of content an optimization produces.
type OptimizationType string

const (
	OptimizationFAQ        OptimizationType = "faq"
	OptimizationPage       OptimizationType = "page"
	OptimizationStructured OptimizationType = "structured"
)

// Label is the human-readable name of the type.
func (t OptimizationType) Label() string {
	switch t {
	case OptimizationFAQ:
		return "FAQ Content"
	case OptimizationPage:
		return "Page Optimization"
	case OptimizationStructured:
		return "Structured Data"
	default:
		return string(t)
	}
}

// ParseOptimizationType validates a form value.
func ParseOptimizationType(s string) (OptimizationType, bool) {
	switch t := OptimizationType(s); t {
	case OptimizationFAQ, OptimizationPage, OptimizationStructured:
		return t, true
	}
	return "", false
}

// FAQEntry is one question and answer.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PageContent is on-page SEO advice.
type PageContent struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        string   `json:"keywords"`
	Recommendations []string `json:"recommendations"`
}

// Optimization is generated content for a project. Exactly one of FAQ,
// Page or Code is populated, according to Type.
type Optimization struct {
	ID        string           `json:"id"`
	ProjectID string           `json:"project_id"`
	Title     string           `json:"title"`
	Type      OptimizationType `json:"type"`
	Date      string           `json:"date"`
	Status    string           `json:"status"`
	FAQ       []FAQEntry       `json:"faq,omitempty"`
	Page      *PageContent     `json:"page,omitempty"`
	Code      string           `json:"code,omitempty"`
}

// PricingPlan is a subscription tier on the home page.
type PricingPlan struct {
	Name        string
	Price       string
	Description string
	Features    []string
	CTAText     string
	Highlight   bool
}

// Feature is a product capability on the home page.
type Feature struct {
	Icon        string
	Title       string
	Description string
}
