package main

// Sample is one benchmark question addressed to a persona.
type Sample struct {
	Name    string
	Persona string
	Text    string
}

// Samples covers both experts and the fallback at varying lengths.
// Used by the default timing mode.
var Samples = []Sample{
	{
		Name:    "a-tiny",
		Persona: "A",
		Text:    "都心中古ワンルーム投資の注意点を教えてください。",
	},
	{
		Name:    "a-medium",
		Persona: "A",
		Text: `会社員（年収700万円、35歳）です。自己資金500万円で、東京23区内の築15年・価格2,200万円・家賃8.5万円の中古ワンルームを検討しています。
管理費・修繕積立金は月1.2万円、固定資産税は年6万円の想定です。
表面利回りと実質利回りの目安、融資を使う場合の注意点、10年後の出口戦略について段階的に助言してください。`,
	},
	{
		Name:    "b-tiny",
		Persona: "B",
		Text:    "体脂肪を落とすための食事例を教えてください。",
	},
	{
		Name:    "b-medium",
		Persona: "B",
		Text: `40歳男性、身長172cm、体重78kg、デスクワーク中心で週2回ジムに通っています。
3か月で体重を5kg落としたいです。朝は時間がなく、昼は社員食堂、夜は自炊です。
1日の摂取カロリーとPFCバランスの目安、平日の食事例、週末の買い物リストを提案してください。`,
	},
	{
		Name:    "c-short",
		Persona: "C",
		Text:    "週末に読むのにおすすめのビジネス書を3冊教えてください。",
	},
}

// QualitySamples are printed with their answers in --quality mode to check
// that each persona answers from its own viewpoint.
var QualitySamples = []Sample{
	{Name: "a-yield", Persona: "A", Text: "表面利回りと実質利回りの違いを、簡単な試算付きで説明してください。"},
	{Name: "a-exit", Persona: "A", Text: "区分マンションを10年保有した後の出口戦略にはどのような選択肢がありますか。"},
	{Name: "a-tax", Persona: "A", Text: "不動産所得の赤字を給与所得と損益通算する際の留意点は何ですか。"},
	{Name: "b-bulk", Persona: "B", Text: "筋肉を増やしたいのですが、1日のたんぱく質量と食事のタイミングの目安を教えてください。"},
	{Name: "b-budget", Persona: "B", Text: "1週間5,000円の食費で健康的に自炊するための買い物リストを作ってください。"},
	{Name: "b-sodium", Persona: "B", Text: "血圧が高めと言われました。減塩しながら満足感のある夕食例を教えてください。"},
	{Name: "cross", Persona: "B", Text: "不動産投資について教えてください。"},
	{Name: "fallback", Persona: "Z", Text: "こんにちは。自己紹介をしてください。"},
}
