// path: forms/catalog.go

// Package forms carries the declarative side of the system: one FormSchema
// per standardized incident form, plus the static reference datasets. No
// algorithm lives here; forms contribute data only and the shared pipeline
// in report/ and session/ does the rest.
package forms

import "github.com/lgnappsweb/qruuei-sub000/models"

// Catalog returns every registered form schema, in menu order.
func Catalog() []*models.FormSchema { return catalog }

// ByPath finds a form schema by its route path.
func ByPath(path string) (*models.FormSchema, bool) {
	for _, s := range catalog {
		if s.Path == path {
			return s, true
		}
	}
	return nil, false
}

// small constructors so the schemas below stay readable

func text(key string) models.Field {
	return models.Field{Key: key, Kind: models.KindText}
}

func labeled(key, label string) models.Field {
	return models.Field{Key: key, Kind: models.KindText, Label: label}
}

func required(f models.Field) models.Field {
	f.Required = true
	return f
}

func boolean(key, label string) models.Field {
	return models.Field{Key: key, Kind: models.KindBoolean, Label: label}
}

func selectOf(key, label string, options ...string) models.Field {
	return models.Field{Key: key, Kind: models.KindSelect, Label: label, Options: options}
}

func multi(key, label string, options ...string) models.Field {
	return models.Field{Key: key, Kind: models.KindMultiSelect, Label: label, Options: options}
}

func group(key, label string, item ...models.Field) models.Field {
	return models.Field{Key: key, Kind: models.KindGroup, Label: label, Item: item}
}

// Every form opens with the same general-data and team blocks.

func baseFields() []models.Field {
	return []models.Field{
		required(text("rodovia")),
		required(labeled("qth", "QTH")),
		selectOf("sentido", "", "Crescente", "Decrescente", "Ambos"),
		required(text("data")),
		text("hora"),
		labeled("municipio", "Município"),
		labeled("viatura", "VTR"),
		text("equipe"),
		boolean("vtrApoio", "VTR de Apoio"),
		labeled("vtrApoioDescricao", "Descrição da VTR de Apoio"),
	}
}

func baseSections() []models.Section {
	return []models.Section{
		{Title: "Dados Gerais", Fields: []string{"rodovia", "qth", "sentido", "data", "hora", "municipio"}},
		{Title: "Equipe", Fields: []string{"viatura", "equipe", "vtrApoio", "vtrApoioDescricao"}},
	}
}

func baseRules() []models.FieldRule {
	return []models.FieldRule{
		{Field: "vtrApoioDescricao", DependsOn: "vtrApoio", Op: models.OpTruthy},
	}
}

func veiculos() models.Field {
	return group("veiculos", "Veículo",
		text("marca"),
		text("modelo"),
		text("cor"),
		text("placa"),
		labeled("municipioPlaca", "Município da Placa"),
		text("condutor"),
		labeled("cpf", "CPF"),
		text("telefone"),
	)
}

func vitimas() models.Field {
	return group("vitimas", "Vítima",
		text("nome"),
		text("idade"),
		selectOf("sexo", "", "Masculino", "Feminino"),
		labeled("lesoes", "Lesões"),
		text("encaminhamento"),
	)
}

func schema(path, title, cod string, requireTracking bool, fields []models.Field, sections []models.Section, rules []models.FieldRule) *models.FormSchema {
	return &models.FormSchema{
		Path:                  path,
		Title:                 title,
		CodOcorrencia:         cod,
		RequireTrackingNumber: requireTracking,
		Fields:                append(baseFields(), fields...),
		Sections:              append(baseSections(), sections...),
		Rules:                 append(baseRules(), rules...),
	}
}

var catalog = []*models.FormSchema{
	schema("veiculo-abandonado", "VEÍCULO ABANDONADO (TO01)", "TO01", true,
		[]models.Field{
			veiculos(),
			multi("providencias", "Providências",
				"Sinalização", "Remoção", "Aguardando proprietário", "Acionamento do guincho", "Outros"),
			labeled("outrosDescricao", "Descrição de Outros"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Veículos", Fields: []string{"veiculos"}},
			{Title: "Providências", Fields: []string{"providencias", "outrosDescricao", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outrosDescricao", DependsOn: "providencias", Op: models.OpContains, Value: "Outros"},
		}),

	schema("animal-na-pista", "ANIMAL NA PISTA (TO02)", "TO02", false,
		[]models.Field{
			selectOf("tipoAnimal", "Tipo de Animal", "Bovino", "Equino", "Canino", "Silvestre", "Outros"),
			labeled("outroAnimal", "Outro Animal"),
			text("quantidade"),
			selectOf("situacao", "Situação", "Vivo na pista", "Morto na pista", "Recolhido"),
			labeled("destinacao", "Destinação"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Ocorrência", Fields: []string{"tipoAnimal", "outroAnimal", "quantidade", "situacao", "destinacao", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outroAnimal", DependsOn: "tipoAnimal", Op: models.OpEquals, Value: "Outros"},
		}),

	schema("acidente-sem-vitima", "ACIDENTE SEM VÍTIMA (TO03)", "TO03", true,
		[]models.Field{
			selectOf("tipoAcidente", "Tipo de Acidente",
				"Colisão traseira", "Colisão frontal", "Colisão lateral", "Saída de pista",
				"Capotamento", "Tombamento", "Choque com objeto fixo", "Outros"),
			labeled("outroAcidente", "Outro Tipo de Acidente"),
			veiculos(),
			selectOf("condicoesPista", "Condições da Pista", "Seca", "Molhada", "Em obras"),
			boolean("pistaSinalizada", "Pista Sinalizada"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Acidente", Fields: []string{"tipoAcidente", "outroAcidente", "condicoesPista", "pistaSinalizada"}},
			{Title: "Veículos", Fields: []string{"veiculos"}},
			{Title: "Observações", Fields: []string{"observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outroAcidente", DependsOn: "tipoAcidente", Op: models.OpEquals, Value: "Outros"},
		}),

	schema("acidente-com-vitima", "ACIDENTE COM VÍTIMA (TO04)", "TO04", true,
		[]models.Field{
			selectOf("tipoAcidente", "Tipo de Acidente",
				"Colisão traseira", "Colisão frontal", "Colisão lateral", "Atropelamento",
				"Saída de pista", "Capotamento", "Tombamento", "Outros"),
			labeled("outroAcidente", "Outro Tipo de Acidente"),
			veiculos(),
			vitimas(),
			boolean("resgateAcionado", "Resgate Acionado"),
			labeled("resgateDescricao", "Descrição do Resgate"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Acidente", Fields: []string{"tipoAcidente", "outroAcidente"}},
			{Title: "Veículos", Fields: []string{"veiculos"}},
			{Title: "Vítimas", Fields: []string{"vitimas"}},
			{Title: "Resgate", Fields: []string{"resgateAcionado", "resgateDescricao", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outroAcidente", DependsOn: "tipoAcidente", Op: models.OpEquals, Value: "Outros"},
			{Field: "resgateDescricao", DependsOn: "resgateAcionado", Op: models.OpTruthy},
		}),

	schema("resgate-pre-hospitalar", "RESGATE PRÉ-HOSPITALAR (TO05)", "TO05", true,
		[]models.Field{
			vitimas(),
			multi("procedimentos", "Procedimentos",
				"Imobilização", "Curativo", "RCP", "Oxigenoterapia", "Outros"),
			labeled("outrosDescricao", "Descrição de Outros"),
			labeled("hospitalDestino", "Hospital de Destino"),
			boolean("ambulanciaAcionada", "Ambulância Acionada"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Vítimas", Fields: []string{"vitimas"}},
			{Title: "Atendimento", Fields: []string{"procedimentos", "outrosDescricao", "hospitalDestino", "ambulanciaAcionada", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outrosDescricao", DependsOn: "procedimentos", Op: models.OpContains, Value: "Outros"},
		}),

	schema("pane-de-veiculo", "PANE DE VEÍCULO (TO06)", "TO06", false,
		[]models.Field{
			selectOf("tipoPane", "Tipo de Pane", "Mecânica", "Elétrica", "Pneu", "Combustível", "Outros"),
			labeled("outraPane", "Outra Pane"),
			veiculos(),
			multi("apoioRealizado", "Apoio Realizado",
				"Sinalização", "Troca de pneu", "Acionamento do guincho", "Transporte do condutor", "Outros"),
			labeled("outrosDescricao", "Descrição de Outros"),
			boolean("localSeguro", "Veículo em Local Seguro"),
		},
		[]models.Section{
			{Title: "Pane", Fields: []string{"tipoPane", "outraPane", "localSeguro"}},
			{Title: "Veículos", Fields: []string{"veiculos"}},
			{Title: "Apoio", Fields: []string{"apoioRealizado", "outrosDescricao"}},
		},
		[]models.FieldRule{
			{Field: "outraPane", DependsOn: "tipoPane", Op: models.OpEquals, Value: "Outros"},
			{Field: "outrosDescricao", DependsOn: "apoioRealizado", Op: models.OpContains, Value: "Outros"},
		}),

	schema("incendio-vegetacao", "INCÊNDIO DE VEGETAÇÃO (TO07)", "TO07", false,
		[]models.Field{
			labeled("areaAtingida", "Área Atingida"),
			selectOf("lateral", "Lateral da Pista", "Direita", "Esquerda", "Ambas"),
			boolean("bombeirosAcionados", "Bombeiros Acionados"),
			labeled("viaturasBombeiros", "Viaturas dos Bombeiros"),
			boolean("pistaInterditada", "Pista Interditada"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Ocorrência", Fields: []string{"areaAtingida", "lateral", "bombeirosAcionados", "viaturasBombeiros", "pistaInterditada", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "viaturasBombeiros", DependsOn: "bombeirosAcionados", Op: models.OpTruthy},
		}),

	schema("carga-derramada", "CARGA DERRAMADA NA PISTA (TO08)", "TO08", true,
		[]models.Field{
			group("materiais", "Material",
				labeled("descricao", "Descrição"),
				text("quantidade"),
				text("risco"),
			),
			boolean("produtoPerigoso", "Produto Perigoso"),
			labeled("numeroOnu", "Número ONU"),
			boolean("pistaInterditada", "Pista Interditada"),
			veiculos(),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Carga", Fields: []string{"materiais", "produtoPerigoso", "numeroOnu", "pistaInterditada"}},
			{Title: "Veículos", Fields: []string{"veiculos"}},
			{Title: "Observações", Fields: []string{"observacoes"}},
		},
		[]models.FieldRule{
			{Field: "numeroOnu", DependsOn: "produtoPerigoso", Op: models.OpTruthy},
		}),

	schema("apoio-usuario", "APOIO AO USUÁRIO (TO09)", "TO09", false,
		[]models.Field{
			labeled("nomeUsuario", "Nome do Usuário"),
			text("telefone"),
			multi("tipoApoio", "Tipo de Apoio",
				"Informação", "Pane seca", "Transporte", "Primeiros socorros", "Outros"),
			labeled("outrosDescricao", "Descrição de Outros"),
			veiculos(),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Usuário", Fields: []string{"nomeUsuario", "telefone"}},
			{Title: "Apoio", Fields: []string{"tipoApoio", "outrosDescricao"}},
			{Title: "Veículos", Fields: []string{"veiculos"}},
			{Title: "Observações", Fields: []string{"observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outrosDescricao", DependsOn: "tipoApoio", Op: models.OpContains, Value: "Outros"},
		}),

	schema("objeto-na-pista", "OBJETO NA PISTA (TO10)", "TO10", false,
		[]models.Field{
			labeled("tipoObjeto", "Tipo de Objeto"),
			selectOf("posicaoPista", "Posição na Pista", "Faixa de rolamento", "Acostamento", "Canteiro central"),
			boolean("removido", "Objeto Removido"),
			labeled("destinacao", "Destinação"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Ocorrência", Fields: []string{"tipoObjeto", "posicaoPista", "removido", "destinacao", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "destinacao", DependsOn: "removido", Op: models.OpTruthy},
		}),

	schema("fiscalizacao-transito", "FISCALIZAÇÃO DE TRÂNSITO (TO11)", "TO11", true,
		[]models.Field{
			labeled("localFiscalizacao", "Local da Fiscalização"),
			text("abordagens"),
			labeled("autuacoes", "Autuações"),
			veiculos(),
			multi("apreensoes", "Apreensões", "CNH", "CRLV", "Veículo", "Outros"),
			labeled("outrosDescricao", "Descrição de Outros"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Fiscalização", Fields: []string{"localFiscalizacao", "abordagens", "autuacoes"}},
			{Title: "Veículos", Fields: []string{"veiculos"}},
			{Title: "Apreensões", Fields: []string{"apreensoes", "outrosDescricao", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outrosDescricao", DependsOn: "apreensoes", Op: models.OpContains, Value: "Outros"},
		}),

	schema("ocorrencia-diversa", "OCORRÊNCIA POLICIAL DIVERSA (TO12)", "TO12", true,
		[]models.Field{
			text("natureza"),
			text("relato"),
			group("envolvidos", "Envolvido",
				text("nome"),
				labeled("cpf", "CPF"),
				labeled("rg", "RG"),
				text("telefone"),
			),
			multi("acionamentos", "Acionamentos",
				"Polícia Civil", "Polícia Militar", "Bombeiros", "Perícia", "Outros"),
			labeled("outrosDescricao", "Descrição de Outros"),
			labeled("observacoes", "Observações"),
		},
		[]models.Section{
			{Title: "Ocorrência", Fields: []string{"natureza", "relato"}},
			{Title: "Envolvidos", Fields: []string{"envolvidos"}},
			{Title: "Acionamentos", Fields: []string{"acionamentos", "outrosDescricao", "observacoes"}},
		},
		[]models.FieldRule{
			{Field: "outrosDescricao", DependsOn: "acionamentos", Op: models.OpContains, Value: "Outros"},
		}),
}
