package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for movie documents.
// Titles get English stemming plus an unstemmed copy for prefix queries;
// genre slugs and industry are exact keywords.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting

	// Same source field, no stemming, so "incep" prefixes "inception".
	titlePlainMapping := bleve.NewTextFieldMapping()
	titlePlainMapping.Analyzer = simple.Name
	titlePlainMapping.Name = "title_plain"
	docMapping.AddFieldMappingsAt("title", titleFieldMapping, titlePlainMapping)

	genresFieldMapping := bleve.NewTextFieldMapping()
	genresFieldMapping.Analyzer = keyword.Name
	genresFieldMapping.Store = true
	genresFieldMapping.Index = false
	docMapping.AddFieldMappingsAt("genres", genresFieldMapping)

	slugsFieldMapping := bleve.NewTextFieldMapping()
	slugsFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("genre_slugs", slugsFieldMapping)

	industryFieldMapping := bleve.NewTextFieldMapping()
	industryFieldMapping.Analyzer = keyword.Name
	industryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("industry", industryFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	movieIDFieldMapping := bleve.NewNumericFieldMapping()
	movieIDFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("movie_id", movieIDFieldMapping)

	scoreFieldMapping := bleve.NewNumericFieldMapping()
	scoreFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("score", scoreFieldMapping)

	indexMapping.DefaultMapping = docMapping

	return indexMapping
}
