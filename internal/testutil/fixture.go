// Package testutil holds a small but complete map export used across package tests.
package testutil

import "strings"

// Lines of the sample export. Only the JSON batches matter to the importer; the
// rest mirror the kinds of settings lines a real export interleaves.
const (
	HeaderLine   = "1.73|Aldermark|2022-03-01|1234567|1000|800|en"
	SettingsLine = "metric|1|km|square|50|0.8|Aldermark"
	CoordsLine   = `{"latT":40,"latN":60,"latS":20,"lonT":60,"lonW":-30,"lonE":30}`
	BiomesLine   = "#466eab,#fbe79f,#b5b887|1,2,3|Marine,Hot desert,Cold desert"
	FeaturesLine = `[0,{"i":1,"land":false,"border":true,"type":"ocean","cells":10,"firstCell":0}]`
	CellsLine    = "0,1,1,2,2,2,3,3,0"

	CulturesLine = `[{"name":"Wildlands","i":0,"base":1,"shield":"round"},` +
		`{"name":"Alderfolk","i":1,"type":"Generic","expansionism":1.2,"color":"#a6cee3","code":"Al","center":10},` +
		`{"name":"Brennish","i":2,"type":"Naval","expansionism":1.5,"color":"#b2df8a","code":"Br","center":40}]`

	CountriesLine = `[{"i":0,"name":"Neutrals","urban":0,"rural":0,"burgs":0,"area":0,"provinces":[],"diplomacy":["x"]},` +
		`{"i":1,"name":"Aldermark","fullName":"Kingdom of Aldermark","type":"Generic","expansionism":1.1,"color":"#fb8072",` +
		`"culture":1,"urban":12.5,"rural":40.25,"burgs":2,"area":1200,"form":"Monarchy","formName":"Kingdom",` +
		`"provinces":[1,2],"pole":[310.5,220.25],"diplomacy":["x","Ally"]},` +
		`{"i":2,"name":"Brenmoor","fullName":"Republic of Brenmoor","type":"Naval","expansionism":1.4,"color":"#80b1d3",` +
		`"culture":2,"urban":5,"rural":10,"burgs":1,"area":600,"form":"Republic","formName":"Republic",` +
		`"provinces":1,"pole":[700,500],"diplomacy":["Ally","x"]}]`

	BurgsLine = `[{},` +
		`{"cell":100,"x":300.5,"y":210.25,"state":1,"i":1,"culture":1,"name":"Alder","feature":1,"capital":1,"port":0,` +
		`"population":12.345,"citadel":1,"plaza":1,"walls":1,"shanty":0,"temple":1},` +
		`{"cell":150,"x":320,"y":260,"state":1,"i":2,"culture":0,"name":"Fenwick","feature":1,"capital":0,"port":3,` +
		`"population":2.5,"citadel":0,"plaza":0,"walls":0,"shanty":0,"temple":0},` +
		`{"cell":300,"x":690,"y":510,"state":2,"i":3,"culture":2,"name":"Brenhaven","feature":2,"capital":1,"port":4,` +
		`"population":8.75,"citadel":1,"plaza":1,"walls":1,"shanty":1,"temple":0}]`

	ReligionsLine = `[{"name":"No religion"},` +
		`{"i":1,"name":"Old Faith","color":"#cccccc","culture":1,"type":"Folk","form":"Shamanism","deity":"Ael","code":"OF"}]`

	ProvincesLine = `[0,` +
		`{"i":1,"state":1,"center":100,"burg":1,"name":"Alderholt","formName":"Duchy","fullName":"Duchy of Alderholt","color":"#ff0000"},` +
		`{"i":2,"state":1,"center":150,"burg":0,"name":"Fenreach","formName":"March","fullName":"March of Fenreach","color":"#00ff00"},` +
		`{"i":3,"state":2,"center":300,"burg":3,"name":"Brenshore","formName":"County","fullName":"County of Brenshore","color":"#0000ff"}]`

	RiversLine = `[{"i":1,"source":100,"mouth":200,"discharge":5,"length":120.5,"width":1,"name":"Silverrun","type":"River","basin":1},` +
		`{"i":2,"source":210,"mouth":250,"length":40,"name":"Fen Brook","type":"Brook","basin":1}]`

	NamesLine = "English|3|20|Alder,Bren,Fen"
)

// Expected non-sentinel entity counts in SampleMap.
const (
	SampleCultures  = 2
	SampleCountries = 2
	SampleBurgs     = 3
	SampleProvinces = 3
	SampleReligions = 1
	SampleRivers    = 2
)

// SampleLines returns the lines of the sample export in file order.
func SampleLines() []string {
	return []string{
		HeaderLine,
		SettingsLine,
		CoordsLine,
		BiomesLine,
		"",
		FeaturesLine,
		CulturesLine,
		CountriesLine,
		BurgsLine,
		CellsLine,
		ReligionsLine,
		ProvincesLine,
		NamesLine,
		RiversLine,
	}
}

// SampleMap is the sample export joined with CRLF line endings.
func SampleMap() string {
	return Join(SampleLines()...)
}

// Join joins lines the way the generator writes them.
func Join(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

// Replace returns the sample export with lines swapped pairwise: every line
// equal to an old value is replaced by the value that follows it.
func Replace(oldnew ...string) string {
	lines := SampleLines()
	for i, l := range lines {
		for j := 0; j+1 < len(oldnew); j += 2 {
			if l == oldnew[j] {
				lines[i] = oldnew[j+1]
			}
		}
	}
	return Join(lines...)
}
