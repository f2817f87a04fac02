package database

// SampleJokes is inserted on first start when the jokes table is empty.
var SampleJokes = []string{
	"Por que o programador faliu? Porque ele usava cache demais.",
	"Como o programador pede café? Um Java, por favor.",
	"Qual é o cúmulo do programador? Sonhar com segmentation fault.",
	"O que o HTML disse pro CSS? Não vai me dar estilo hoje?",
	"Por que os programadores preferem escuro? Porque a luz atrai bugs.",
	"Qual é a linguagem de programação mais educada? O Please-thon.",
	"Por que o servidor foi ao médico? Estava com muita requisição.",
	"Quantos programadores são necessários para trocar uma lâmpada? Nenhum. Isso é um problema de hardware.",
	"O que o Python disse ao Java? Menos chaves, mais abraços.",
	"Por que os programadores não conseguem guardar segredos? Porque eles sempre fazem log.",
	"O que acontece quando você coloca café no código? Ele vira JavaScript.",
	"Sabe por que o programador adora a natureza? Porque tem muitas árvores de diretórios.",
	"Qual é a comida favorita do programador? Byte.",
	"O que o código disse para o outro? Compila comigo?",
	"Por que o framework terminou com a biblioteca? Porque não tinha mais dependência.",
	"Por que o computador foi ao psicólogo? Porque tinha muitos conflitos internos.",
	"Qual é o animal preferido dos devs? O bug. Sempre aparece sem ser chamado.",
	"O que o Linux disse para o Windows? Você trava, eu rodo.",
	"Por que o JavaScript foi a terapia? Porque tinha muitos problemas de escopo.",
	"Qual é o super-herói favorito do programador? O Debug-man.",
}
