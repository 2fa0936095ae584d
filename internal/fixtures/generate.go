package fixtures

import (
	"fmt"
	"strings"
	"time"
)

// GenerateOptimization builds placeholder content for the given type and
// keywords. Nothing is analysed; the text is a template.
func GenerateOptimization(id, projectID string, typ OptimizationType, keywords string, now time.Time) Optimization {
	opt := Optimization{
		ID:        id,
		ProjectID: projectID,
		Title:     fmt.Sprintf("%s Optimization for %s", strings.ToUpper(string(typ)), keywords),
		Type:      typ,
		Date:      now.Format(time.DateOnly),
		Status:    "generated",
	}

	switch typ {
	case OptimizationFAQ:
		opt.FAQ = []FAQEntry{
			{
				Question: fmt.Sprintf("What is %s?", keywords),
				Answer:   fmt.Sprintf("[Generated] %s is a comprehensive solution designed to help businesses achieve their goals through innovative approaches and cutting-edge technology.", keywords),
			},
			{
				Question: fmt.Sprintf("How can %s benefit my business?", keywords),
				Answer:   fmt.Sprintf("[Generated] Implementing %s can lead to improved efficiency, cost savings, and enhanced customer satisfaction for your business.", keywords),
			},
		}
	case OptimizationPage:
		opt.Page = &PageContent{
			Title:           fmt.Sprintf("[Generated] %s - Comprehensive Solutions for Your Business", keywords),
			MetaDescription: fmt.Sprintf("[Generated] Discover how %s can transform your operations and drive growth for your organization.", keywords),
			Keywords:        keywords,
			Recommendations: []string{
				fmt.Sprintf("[Generated] Optimize content to include relevant variations of %s", keywords),
				fmt.Sprintf("[Generated] Improve page structure to enhance user experience for %s-related queries", keywords),
			},
		}
	default:
		opt.Code = fmt.Sprintf("[Generated] Structured data for %s would be added here.", keywords)
	}
	return opt
}
