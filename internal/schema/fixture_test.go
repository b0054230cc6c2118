package schema

import "formbuilder/internal/model"

func q(id string) model.Question {
	return model.Question{ID: id, Label: id, Type: "obs", QuestionOptions: model.QuestionOptions{Rendering: model.RenderingText}}
}

func group(id string, children ...model.Question) model.Question {
	g := q(id)
	g.Type = "obsGroup"
	g.QuestionOptions.Rendering = model.RenderingGroup
	g.Questions = append([]model.Question{}, children...)
	return g
}

// fixture: page 0 has S1=[a,b,c] and S2=[d, vitals{height,weight}]; page 1 has S3=[e].
func fixture() model.Schema {
	return model.Schema{
		Name:      "Intake",
		Processor: model.DefaultProcessor,
		Pages: []model.Page{
			{Label: "P1", Sections: []model.Section{
				{Label: "S1", Questions: []model.Question{q("a"), q("b"), q("c")}},
				{Label: "S2", Questions: []model.Question{q("d"), group("vitals", q("height"), q("weight"))}},
			}},
			{Label: "P2", Sections: []model.Section{
				{Label: "S3", Questions: []model.Question{q("e")}},
			}},
		},
	}
}

func ids(qs []model.Question) []string {
	out := []string{}
	for _, x := range qs {
		out = append(out, x.ID)
	}
	return out
}
