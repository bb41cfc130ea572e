// Package chartfile reads chart definitions and the series data they
// reference.
//
// # Chart Files
//
// A chart file is TOML. Top-level keys set the viewport and negotiation
// options; each [[layers]] table names a chart type and a data source:
//
//	title = "Revenue by month"
//	scrollable = true
//	secondary_axis = "auto"
//
//	[viewport]
//	width = 800
//	height = 400
//
//	[value]
//	title = "EUR"
//
//	[[layers]]
//	type = "column"
//	source = "revenue.csv"
//
//	[[layers]]
//	type = "line"
//	source = "targets.xlsx"
//	sheet = "2024"
//
// Sources are resolved relative to the chart file and may not leave its
// directory.
//
// # Data Sources
//
// CSV and XLSX sources are tables: the header row holds the category title
// followed by one column per series, and each further row is one category.
// Empty cells are missing values. JSON sources spell out categories and
// series directly; see [ReadJSON].
package chartfile
