package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

const (
	resourceCategories = "taxonomy://categories"
	resourceKeywords   = "taxonomy://keywords"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         resourceCategories,
		Name:        "Interest Categories",
		Description: "Categories with their social and activity axes and suggestion templates",
		MimeType:    "text/plain",
	},
	{
		URI:         resourceKeywords,
		Name:        "Taxonomy Keywords",
		Description: "Weighted keywords per category, plus negation words and context boosters",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
