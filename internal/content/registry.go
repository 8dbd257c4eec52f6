package content

// TableEvents and siblings name the content tables exposed through the
// generic CRUD surface.
const (
	TableEvents       = "events"
	TableWebinars     = "webinars"
	TablePublications = "publications"
	TableNews         = "news"
)

// tableSpec binds a content table to the set of columns callers may write.
// Only columns on the allow-list ever reach the store; anything else in a
// request body is dropped on create and rejected on update.
type tableSpec struct {
	name    string
	allowed map[string]struct{}
}

func newTableSpec(name string, fields ...string) tableSpec {
	allowed := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		allowed[field] = struct{}{}
	}
	return tableSpec{name: name, allowed: allowed}
}

var tableRegistry = map[string]tableSpec{
	TableEvents: newTableSpec(TableEvents,
		"title", "title_uz", "title_en",
		"description", "description_uz", "description_en",
		"event_date", "event_time", "location", "type", "format",
		"image_url", "gallery",
		"summary", "summary_uz", "summary_en",
		"max_capacity", "registered_count", "status",
	),
	TableWebinars: newTableSpec(TableWebinars,
		"title", "title_uz", "title_en",
		"speaker", "date", "duration", "track",
		"description", "description_uz", "description_en",
		"image_url", "max_capacity", "status",
	),
	TablePublications: newTableSpec(TablePublications,
		"title", "title_uz", "title_en",
		"author", "category",
		"excerpt", "excerpt_uz", "excerpt_en",
		"content", "content_uz", "content_en",
		"image_url", "file_url", "status",
	),
	TableNews: newTableSpec(TableNews,
		"title", "title_uz", "title_en",
		"content", "content_uz", "content_en",
		"excerpt", "excerpt_uz", "excerpt_en",
		"category", "image_url", "status",
	),
}

// KnownTable reports whether the name belongs to the CRUD table registry.
func KnownTable(name string) bool {
	_, ok := tableRegistry[name]
	return ok
}

// Tables lists the registered content table names.
func Tables() []string {
	return []string{TableEvents, TableWebinars, TablePublications, TableNews}
}
