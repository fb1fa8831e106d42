// path: forms/datasets.go
package forms

import "strings"

// CodeEntry is one row of a static reference dataset.
type CodeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Datasets returns the immutable lookup tables, keyed by dataset name.
// They feed form selects and the reference-search screen; none of them is
// part of the pipeline itself.
func Datasets() map[string][]CodeEntry {
	return map[string][]CodeEntry{
		"ocorrencias":          occurrenceCodes,
		"apoios":               assistanceCodes,
		"panes":                breakdownCodes,
		"fonetico":             phoneticAlphabet,
		"pontosApoio":          supportPoints,
		"placasRegulamentacao": regulatorySigns,
		"placasAdvertencia":    warningSigns,
	}
}

// Search scans a dataset for entries whose code or description contains q,
// case-insensitively. An empty q returns the whole dataset.
func Search(name, q string) ([]CodeEntry, bool) {
	set, ok := Datasets()[name]
	if !ok {
		return nil, false
	}
	if q == "" {
		return set, true
	}
	q = strings.ToLower(q)
	var out []CodeEntry
	for _, e := range set {
		if strings.Contains(strings.ToLower(e.Code), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out, true
}

var occurrenceCodes = []CodeEntry{
	{Code: "TO01", Description: "Veículo abandonado"},
	{Code: "TO02", Description: "Animal na pista"},
	{Code: "TO03", Description: "Acidente sem vítima"},
	{Code: "TO04", Description: "Acidente com vítima"},
	{Code: "TO05", Description: "Resgate pré-hospitalar"},
	{Code: "TO06", Description: "Pane de veículo"},
	{Code: "TO07", Description: "Incêndio de vegetação"},
	{Code: "TO08", Description: "Carga derramada na pista"},
	{Code: "TO09", Description: "Apoio ao usuário"},
	{Code: "TO10", Description: "Objeto na pista"},
	{Code: "TO11", Description: "Fiscalização de trânsito"},
	{Code: "TO12", Description: "Ocorrência policial diversa"},
}

var assistanceCodes = []CodeEntry{
	{Code: "AP01", Description: "Informação ao usuário"},
	{Code: "AP02", Description: "Pane seca"},
	{Code: "AP03", Description: "Troca de pneu"},
	{Code: "AP04", Description: "Transporte de condutor"},
	{Code: "AP05", Description: "Primeiros socorros"},
	{Code: "AP06", Description: "Acionamento de guincho"},
	{Code: "AP07", Description: "Sinalização de via"},
}

var breakdownCodes = []CodeEntry{
	{Code: "PN01", Description: "Pane mecânica"},
	{Code: "PN02", Description: "Pane elétrica"},
	{Code: "PN03", Description: "Pneu furado"},
	{Code: "PN04", Description: "Pane seca (combustível)"},
	{Code: "PN05", Description: "Superaquecimento"},
}

var phoneticAlphabet = []CodeEntry{
	{Code: "A", Description: "Alfa"},
	{Code: "B", Description: "Bravo"},
	{Code: "C", Description: "Charlie"},
	{Code: "D", Description: "Delta"},
	{Code: "E", Description: "Echo"},
	{Code: "F", Description: "Foxtrot"},
	{Code: "G", Description: "Golf"},
	{Code: "H", Description: "Hotel"},
	{Code: "I", Description: "India"},
	{Code: "J", Description: "Juliett"},
	{Code: "K", Description: "Kilo"},
	{Code: "L", Description: "Lima"},
	{Code: "M", Description: "Mike"},
	{Code: "N", Description: "November"},
	{Code: "O", Description: "Oscar"},
	{Code: "P", Description: "Papa"},
	{Code: "Q", Description: "Quebec"},
	{Code: "R", Description: "Romeo"},
	{Code: "S", Description: "Sierra"},
	{Code: "T", Description: "Tango"},
	{Code: "U", Description: "Uniform"},
	{Code: "V", Description: "Victor"},
	{Code: "W", Description: "Whiskey"},
	{Code: "X", Description: "X-ray"},
	{Code: "Y", Description: "Yankee"},
	{Code: "Z", Description: "Zulu"},
}

var supportPoints = []CodeEntry{
	{Code: "BASE CG", Description: "Base Campo Grande — MS-040 KM 0"},
	{Code: "BASE TL", Description: "Base Três Lagoas — MS-112 KM 12"},
	{Code: "BASE DR", Description: "Base Dourados — MS-156 KM 3"},
	{Code: "BASE CR", Description: "Base Corumbá — MS-228 KM 45"},
	{Code: "BASE PP", Description: "Base Ponta Porã — MS-164 KM 18"},
}

var regulatorySigns = []CodeEntry{
	{Code: "R-1", Description: "Parada obrigatória"},
	{Code: "R-2", Description: "Dê a preferência"},
	{Code: "R-4a", Description: "Proibido virar à esquerda"},
	{Code: "R-4b", Description: "Proibido virar à direita"},
	{Code: "R-6a", Description: "Proibido estacionar"},
	{Code: "R-6b", Description: "Estacionamento regulamentado"},
	{Code: "R-7", Description: "Proibido ultrapassar"},
	{Code: "R-19", Description: "Velocidade máxima permitida"},
	{Code: "R-24a", Description: "Sentido de circulação da via"},
	{Code: "R-33", Description: "Sentido circular obrigatório"},
}

var warningSigns = []CodeEntry{
	{Code: "A-1a", Description: "Curva acentuada à esquerda"},
	{Code: "A-1b", Description: "Curva acentuada à direita"},
	{Code: "A-7a", Description: "Via lateral à esquerda"},
	{Code: "A-14", Description: "Semáforo à frente"},
	{Code: "A-18", Description: "Saliência ou lombada"},
	{Code: "A-21a", Description: "Ponte estreita"},
	{Code: "A-26a", Description: "Sentido único"},
	{Code: "A-32a", Description: "Trânsito de pedestres"},
	{Code: "A-35", Description: "Animais"},
	{Code: "A-36", Description: "Animais selvagens"},
}
