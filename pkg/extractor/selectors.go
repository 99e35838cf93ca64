package extractor

type titleSource struct {
	selector string
	attr     string // empty means element text
}

// titleSources are tried in order; the first non-empty value wins.
var titleSources = []titleSource{
	{selector: `meta[property="og:title"]`, attr: "content"},
	{selector: `meta[name="twitter:title"]`, attr: "content"},
	{selector: "h1"},
	{selector: "title"},
}

// headerSelectors are ranked from most to least specific. The first
// selector with any match wins, even when its text is empty.
var headerSelectors = []string{
	"h1.entry-title",
	"h1.post-title",
	"h1.article-title",
	"h1.headline",
	".entry-title",
	".post-title",
	".article-title",
	".article-header h1",
	"article h1",
	"main h1",
	"h1",
}

// noiseSelectors are removed before the body is located.
var noiseSelectors = "script, style, nav, header, footer, aside, noscript, iframe"

// noisePatterns match class or id attributes by case-sensitive substring.
var noisePatterns = []string{
	"advertisement",
	"ads",
	"social",
	"share",
	"comment",
}

// bodySelectors are ranked container candidates for the article body.
var bodySelectors = []string{
	"article .entry-content",
	"article .post-content",
	"article .article-content",
	"article .article-body",
	"article .content",
	".entry-content",
	".post-content",
	".article-content",
	".article-body",
	".story-body",
	`[itemprop="articleBody"]`,
	"article",
	"main",
	`[role="main"]`,
	".content",
	".post",
	".entry",
	`div[class*="content"]`,
}

const (
	// minContainerChars is exclusive: a container needs more characters than this.
	minContainerChars = 200

	// minBlockChars is exclusive and applies to fallback paragraph/div blocks.
	minBlockChars = 100

	maxFallbackBlocks = 10
)

var descriptionSelectors = []string{
	`meta[name="description"]`,
	`meta[property="og:description"]`,
	`meta[name="twitter:description"]`,
}

var keywordSelectors = []string{
	`meta[name="keywords"]`,
	`meta[name="news_keywords"]`,
}

var authorSelectors = []string{
	`meta[name="author"]`,
	`meta[property="article:author"]`,
	`meta[name="dc.creator"]`,
}

var publishDateSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="pubdate"]`,
	`meta[name="publish-date"]`,
	`meta[name="date"]`,
	`meta[itemprop="datePublished"]`,
}
