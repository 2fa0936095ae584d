// Package fixtures defines the static demonstration data shown on the
// marketing and dashboard pages. Every accessor returns a fresh copy, so
// callers may modify what they receive without affecting later requests.
package fixtures

// Provider supplies fixture data to page handlers. Static is the only
// implementation; tests substitute their own.
type Provider interface {
	Projects() []Project
	VisibilityTrend() []TrendPoint
	KeywordPerformance() []KeywordPerformance
	DashboardMetrics() []Metric
	ScanResults() []ScanResult
	Reports() []Report
	Optimizations() []Optimization
	YearlyTrend() []TrendPoint
	HeroStats() []Metric
	PricingPlans() []PricingPlan
	Features() []Feature
}

// Static is the built-in dataset.
type Static struct{}

// NewStatic returns the built-in dataset.
func NewStatic() Static { return Static{} }

// Projects returns the starter projects every workspace is seeded with.
func (Static) Projects() []Project {
	return []Project{
		{ID: "proj_1", Name: "Brand X", Domain: "brandx.com", VisibilityScore: 87, CreatedAt: "2023-01-15"},
		{ID: "proj_2", Name: "Tech Solutions", Domain: "techsolutions.io", VisibilityScore: 75, CreatedAt: "2023-02-20"},
		{ID: "proj_3", Name: "Global Retail", Domain: "globalretail.com", VisibilityScore: 68, CreatedAt: "2023-03-05"},
	}
}

// VisibilityTrend returns the week of scores on the dashboard chart.
func (Static) VisibilityTrend() []TrendPoint {
	return points([]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		[]int{65, 59, 80, 81, 56, 55, 72})
}

// KeywordPerformance returns the dashboard keyword list.
func (Static) KeywordPerformance() []KeywordPerformance {
	return keywordRows()
}

func keywordRows() []KeywordPerformance {
	return []KeywordPerformance{
		{Name: "Brand X", Visibility: 85, Trend: TrendUp},
		{Name: "Product Y", Visibility: 72, Trend: TrendUp},
		{Name: "Service Z", Visibility: 68, Trend: TrendDown},
		{Name: "Solution A", Visibility: 92, Trend: TrendUp},
		{Name: "Feature B", Visibility: 63, Trend: TrendDown},
	}
}

// DashboardMetrics returns the four headline cards.
func (Static) DashboardMetrics() []Metric {
	return []Metric{
		{Title: "Visibility Score", Value: "87", Change: "+5%", Trend: TrendUp, Icon: "fa-eye", Description: "Overall brand visibility"},
		{Title: "AI Mention Rate", Value: "92%", Change: "+2%", Trend: TrendUp, Icon: "fa-brain", Description: "Brand mentions in AI models"},
		{Title: "Search Rankings", Value: "4.2", Change: "-0.3", Trend: TrendDown, Icon: "fa-search", Description: "Average keyword position"},
		{Title: "Competitive Gap", Value: "12%", Change: "-3%", Trend: TrendDown, Icon: "fa-chart-pie", Description: "vs top competitor"},
	}
}

// ScanResults returns one scan per starter project.
func (Static) ScanResults() []ScanResult {
	return []ScanResult{
		{
			ID: "scan_1", ProjectID: "proj_1", ProjectName: "Brand X", Date: "2023-04-15",
			Models:         []string{"ChatGPT", "Perplexity", "DeepSeek"},
			MentionRate:    92,
			SentimentScore: 94,
			KeywordRanking: keywordRows(),
			ModelComparison: []ModelScore{
				{Name: "ChatGPT", MentionRate: 95, SentimentScore: 92},
				{Name: "Perplexity", MentionRate: 89, SentimentScore: 96},
				{Name: "DeepSeek", MentionRate: 90, SentimentScore: 94},
			},
			Competitors: []CompetitorScore{
				{Name: "Brand X", Score: 87},
				{Name: "Competitor A", Score: 82},
				{Name: "Competitor B", Score: 76},
				{Name: "Competitor C", Score: 68},
			},
		},
		{
			ID: "scan_2", ProjectID: "proj_2", ProjectName: "Tech Solutions", Date: "2023-04-14",
			Models:         []string{"ChatGPT", "DeepSeek"},
			MentionRate:    75,
			SentimentScore: 88,
			ModelComparison: []ModelScore{
				{Name: "ChatGPT", MentionRate: 78, SentimentScore: 86},
				{Name: "DeepSeek", MentionRate: 72, SentimentScore: 90},
			},
		},
		{
			ID: "scan_3", ProjectID: "proj_3", ProjectName: "Global Retail", Date: "2023-04-13",
			Models:         []string{"Perplexity"},
			MentionRate:    68,
			SentimentScore: 85,
			ModelComparison: []ModelScore{
				{Name: "Perplexity", MentionRate: 68, SentimentScore: 85},
			},
		},
	}
}

// Reports returns the generated reports.
func (Static) Reports() []Report {
	return []Report{
		{
			ID: "report_1", ProjectID: "proj_1", ProjectName: "Brand X",
			Title: "Monthly Visibility Report", Date: "2023-04-01", Type: "monthly",
			TrendData: []ReportPoint{
				{Month: "Jan", Visibility: 65, Mentions: 42, Sentiment: 88},
				{Month: "Feb", Visibility: 59, Mentions: 38, Sentiment: 86},
				{Month: "Mar", Visibility: 80, Mentions: 53, Sentiment: 90},
				{Month: "Apr", Visibility: 81, Mentions: 58, Sentiment: 92},
				{Month: "May", Visibility: 87, Mentions: 62, Sentiment: 94},
			},
			Summary: "Brand visibility has increased by 34% compared to the previous month, with significant improvements in AI model mentions and positive sentiment.",
		},
		{
			ID: "report_2", ProjectID: "proj_1", ProjectName: "Brand X",
			Title: "Competitor Analysis Report", Date: "2023-03-15", Type: "competitive",
			Summary: "Brand X maintains a competitive edge over competitors with 15% higher visibility score and more positive sentiment in AI model responses.",
		},
		{
			ID: "report_3", ProjectID: "proj_2", ProjectName: "Tech Solutions",
			Title: "Quarterly Performance Report", Date: "2023-03-31", Type: "quarterly",
			TrendData: []ReportPoint{
				{Month: "Jan", Visibility: 60, Mentions: 35, Sentiment: 85},
				{Month: "Feb", Visibility: 65, Mentions: 40, Sentiment: 86},
				{Month: "Mar", Visibility: 75, Mentions: 45, Sentiment: 88},
			},
			Summary: "Tech Solutions has shown steady growth throughout Q1, with a 25% increase in brand visibility and improved sentiment scores across all measured AI models.",
		},
	}
}

// Optimizations returns the starter optimizations every workspace is
// seeded with.
func (Static) Optimizations() []Optimization {
	return []Optimization{
		{
			ID: "opt_1", ProjectID: "proj_1", Title: "FAQ Content for Product Y",
			Type: OptimizationFAQ, Date: "2023-04-15", Status: "generated",
			FAQ: []FAQEntry{
				{
					Question: "What makes Product Y different from competitors?",
					Answer:   "Product Y stands out due to its innovative approach to solving common industry challenges. Unlike traditional solutions, it leverages advanced AI technology to deliver more accurate results with significantly less manual intervention required.",
				},
				{
					Question: "How long does it take to implement Product Y?",
					Answer:   "Most customers can fully implement Product Y within 2-4 weeks, depending on the complexity of their existing systems. Our implementation team works closely with each client to ensure a smooth transition and minimal disruption to business operations.",
				},
				{
					Question: "What kind of support is available for Product Y users?",
					Answer:   "We offer comprehensive support for all Product Y users, including 24/7 technical assistance, detailed documentation, regular webinars, and access to our dedicated customer success team. Enterprise clients also receive personalized account management.",
				},
			},
		},
		{
			ID: "opt_2", ProjectID: "proj_1", Title: "Page Optimization for Service Z",
			Type: OptimizationPage, Date: "2023-04-10", Status: "generated",
			Page: &PageContent{
				Title:           "Enhance Your Business with Service Z - Comprehensive Solutions for Modern Enterprises",
				MetaDescription: "Discover how Service Z can transform your business operations with cutting-edge technology and industry-leading expertise. Schedule a demo today.",
				Keywords:        "service z, business solutions, enterprise software, operational efficiency",
				Recommendations: []string{
					"Add structured data markup to improve search engine understanding",
					"Optimize page loading speed by compressing images and leveraging browser caching",
					"Enhance user experience with clearer navigation and call-to-action buttons",
				},
			},
		},
		{
			ID: "opt_3", ProjectID: "proj_2", Title: "Structured Data for Tech Solutions Homepage",
			Type: OptimizationStructured, Date: "2023-04-05", Status: "generated",
			Code: techSolutionsJSONLD,
		},
	}
}

const techSolutionsJSONLD = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Organization",
  "name": "Tech Solutions",
  "url": "https://techsolutions.io",
  "logo": "https://techsolutions.io/logo.png",
  "contactPoint": {
    "@type": "ContactPoint",
    "telephone": "+1-123-456-7890",
    "contactType": "customer support"
  },
  "sameAs": [
    "https://www.facebook.com/techsolutions",
    "https://twitter.com/techsolutions",
    "https://www.linkedin.com/company/techsolutions"
  ]
}
</script>`

// YearlyTrend returns the monthly scores on the home page chart.
func (Static) YearlyTrend() []TrendPoint {
	return points(
		[]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		[]int{65, 59, 80, 81, 56, 55, 72, 78, 85, 90, 95, 92},
	)
}

// HeroStats returns the three figures under the home page chart.
func (Static) HeroStats() []Metric {
	return []Metric{
		{Title: "AI Mention Rate", Value: "92%", Change: "+12%", Icon: "fa-chart-pie"},
		{Title: "Search Visibility", Value: "87%", Change: "+8%", Icon: "fa-search"},
		{Title: "Sentiment Score", Value: "94/100", Change: "+5%", Icon: "fa-smile"},
	}
}

// PricingPlans returns the subscription tiers.
func (Static) PricingPlans() []PricingPlan {
	return []PricingPlan{
		{
			Name: "Basic", Price: "99",
			Description: "Perfect for individual brands or small businesses",
			Features: []string{
				"Up to 5 projects",
				"10 AI scans per day",
				"Basic keyword analysis",
				"Email reports",
				"Community support",
			},
			CTAText: "Free Trial",
		},
		{
			Name: "Pro", Price: "299",
			Description: "Ideal for growing businesses and professional marketing teams",
			Features: []string{
				"Up to 20 projects",
				"50 AI scans per day",
				"Advanced keyword analysis",
				"PDF report export",
				"Priority customer support",
				"Competitive comparison analysis",
			},
			CTAText:   "Buy Now",
			Highlight: true,
		},
		{
			Name: "Enterprise", Price: "999",
			Description: "Designed for large enterprises and marketing agencies",
			Features: []string{
				"Unlimited projects",
				"200 AI scans per day",
				"Full-featured analysis suite",
				"Custom reports",
				"24/7 dedicated support",
				"Team collaboration features",
				"API access",
			},
			CTAText: "Contact Sales",
		},
	}
}

// Features returns the core product capabilities.
func (Static) Features() []Feature {
	return []Feature{
		{Icon: "fa-robot", Title: "Multi-model AI Detection Engine", Description: "Integrates advanced models like ChatGPT, Perplexity, and DeepSeek for comprehensive brand online visibility analysis"},
		{Icon: "fa-chart-line", Title: "Real-time Trend Tracking", Description: "Continuously monitors brand keyword ranking changes to identify market opportunities and potential risks"},
		{Icon: "fa-users", Title: "Competitor Analysis", Description: "Gain deep insights into competitor performance and receive competitive advantage strategies and differentiation recommendations"},
		{Icon: "fa-file-pdf", Title: "Professional Report Generation", Description: "Automatically generate detailed PDF reports with data visualizations and actionable optimization suggestions"},
		{Icon: "fa-lightbulb", Title: "Content Optimization Suggestions", Description: "AI-powered content optimization to enhance brand visibility and attractiveness in search results"},
		{Icon: "fa-clock", Title: "Scheduled Task Management", Description: "Set up automated scans and report delivery to stay updated on brand dynamics without manual monitoring"},
	}
}

func points(labels []string, scores []int) []TrendPoint {
	out := make([]TrendPoint, len(labels))
	for i := range labels {
		out[i] = TrendPoint{Label: labels[i], Score: scores[i]}
	}
	return out
}

// --- Lookups ---

// FindScan returns the scan for a project.
func FindScan(p Provider, projectID string) (ScanResult, bool) {
	for _, s := range p.ScanResults() {
		if s.ProjectID == projectID {
			return s, true
		}
	}
	return ScanResult{}, false
}

// FindReport returns a report by id.
func FindReport(p Provider, id string) (Report, bool) {
	for _, r := range p.Reports() {
		if r.ID == id {
			return r, true
		}
	}
	return Report{}, false
}
