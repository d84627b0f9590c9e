// ABOUTME: Benchmark scenario data for retrieval quality evaluation
// ABOUTME: Defines corpus documents, queries and expected sources

package retrieval

// Scenario is one retrieval benchmark: a corpus plus scored queries.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Corpus      []CorpusDoc
	Queries     []Query
}

// CorpusDoc is a document ingested before running the queries.
type CorpusDoc struct {
	Label string
	Text  string
}

// Query pairs a question with the document expected to ground the answer.
type Query struct {
	Text          string
	ExpectedDocID string
}

// Result is the outcome of one benchmark scenario.
type Result struct {
	ScenarioID   string                 `json:"scenario_id"`
	ScenarioName string                 `json:"scenario_name"`
	HitRate      float64                `json:"hit_rate"`
	MRR          float64                `json:"mrr"`
	Status       string                 `json:"status"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// CareerScenario exercises retrieval over a small multi-employer corpus.
func CareerScenario() Scenario {
	return Scenario{
		ID:          "career",
		Name:        "Career corpus routing",
		Description: "Queries about specific employers and tools must retrieve the matching document",
		Corpus: []CorpusDoc{
			{
				Label: "bosch.md",
				Text: "Bosch (2016-2020): ADAS engineer. Built driver assistance HMIs in Qt " +
					"and C++, integrated radar and camera sensor pipelines, owned the lane " +
					"keeping assist UI. Worked in a scaled agile setup with hardware teams.",
			},
			{
				Label: "harman.md",
				Text: "Harman (2020-2023): test automation lead. Designed Jenkins pipelines " +
					"for infotainment system validation, wrote Python test frameworks, " +
					"introduced nightly hardware-in-the-loop regression runs.",
			},
			{
				Label: "skills.md",
				Text: "Core skills: C++, Python, Qt, Jenkins, CAN bus tooling, Docker, " +
					"Linux. Comfortable moving between embedded targets and CI infrastructure.",
			},
		},
		Queries: []Query{
			{Text: "Tell me about Jenkins pipeline experience", ExpectedDocID: "doc_harman"},
			{Text: "What driver assistance work have you done", ExpectedDocID: "doc_bosch"},
			{Text: "Experience with Qt user interfaces", ExpectedDocID: "doc_bosch"},
			{Text: "How did you validate infotainment systems", ExpectedDocID: "doc_harman"},
			{Text: "Which programming languages and tools do you know", ExpectedDocID: "doc_skills"},
		},
	}
}

// ChunkingScenario checks that long documents still route queries to the
// right source after being split into overlapping chunks.
func ChunkingScenario() Scenario {
	long := "Project Atlas was a fleet telematics platform. "
	for i := 0; i < 5; i++ {
		long += "The ingestion layer consumed CAN bus frames over MQTT and normalized " +
			"them into time series storage. Grafana dashboards tracked vehicle health. "
	}
	long += "The alerting stage used threshold rules evaluated in a Go worker pool."

	return Scenario{
		ID:          "chunking",
		Name:        "Long document chunk retrieval",
		Description: "A query about a detail buried in a long document must retrieve one of its chunks",
		Corpus: []CorpusDoc{
			{Label: "atlas.md", Text: long},
			{
				Label: "misc.md",
				Text:  "Hobby projects: a static site generator and a home automation dashboard.",
			},
		},
		Queries: []Query{
			{Text: "How did the alerting stage work", ExpectedDocID: "doc_atlas"},
			{Text: "What consumed CAN bus frames", ExpectedDocID: "doc_atlas"},
			{Text: "Tell me about hobby projects", ExpectedDocID: "doc_misc"},
		},
	}
}

// AllScenarios returns every benchmark scenario.
func AllScenarios() []Scenario {
	return []Scenario{CareerScenario(), ChunkingScenario()}
}
