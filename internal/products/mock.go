package product

const unsplash = "https://images.unsplash.com/"

func photo(id string) string {
	return unsplash + id + "?w=800&auto=format&fit=crop"
}

var (
	imgDenim      = photo("photo-1543076447-215ad9ba6923")
	imgShirt      = photo("photo-1552374196-1ab2a1c593e8")
	imgDress      = photo("photo-1576566588028-4147f3842f27")
	imgSneaker    = photo("photo-1542291026-7eec264c27ff")
	imgRunner     = photo("photo-1595950653106-6c9ebd614d3a")
	imgFloral     = photo("photo-1515886657613-9f3515b0c78f")
	imgCropped    = photo("photo-1571945153237-4929e783af4a")
	imgSkinny     = photo("photo-1609505848912-b7c3b8b4beda")
	imgSandal     = photo("photo-1543163521-1bf539c55dd2")
	imgKidsSet    = photo("photo-1522771930-78848d9293e8")
	imgKidsTee    = photo("photo-1567113463300-102a7eb3cb26")
	imgKidsShoe   = photo("photo-1514989940723-e8e51635b782")
	imgBag        = photo("photo-1584917865442-de89df76afd3")
	imgBelt       = photo("photo-1625591342274-013d1e8c1c1a")
	imgSunglasses = photo("photo-1511499767150-a48a237f0083")
	imgChelsea    = photo("photo-1603808033192-082d6919d3e1")
	imgAnkleBoot  = photo("photo-1608256246200-53e635b5b65f")
)

// MockProducts returns the built-in catalog served while no products document
// has been stored. Every call returns a fresh copy.
func MockProducts() []Product {
	out := make([]Product, len(mockProducts))
	for i, p := range mockProducts {
		out[i] = Clone(p)
	}
	return out
}

var mockProducts = []Product{
	{
		ID:             "f1",
		Name:           "Vestido Floral Midi",
		Description:    "Vestido floral midi com alças ajustáveis e decote em V. Perfeito para ocasiões casuais e festivas.",
		Price:          129.90,
		ImageURL:       imgFloral,
		Images:         []string{imgCropped},
		Category:       "feminino",
		Type:           TypeClothing,
		Sizes:          []string{"PP", "P", "M", "G", "GG"},
		Colors:         []string{"Preto", "Vermelho", "Azul"},
		Stock:          15,
		Featured:       true,
		ShowOnHomepage: true,
	},
	{
		ID:             "f2",
		Name:           "Blusa Cropped Decote Quadrado",
		Description:    "Blusa cropped com decote quadrado e mangas bufantes. Combina com saias e calças de cintura alta.",
		Price:          59.90,
		Discount:       10,
		ImageURL:       imgCropped,
		Images:         []string{imgFloral},
		Category:       "feminino",
		Type:           TypeClothing,
		Sizes:          []string{"PP", "P", "M", "G"},
		Colors:         []string{"Branco", "Preto", "Rosa"},
		Stock:          20,
		Featured:       true,
		ShowOnHomepage: true,
	},
	{
		ID:          "f3",
		Name:        "Calça Jeans Skinny Cintura Alta",
		Description: "Calça jeans skinny de cintura alta com acabamento premium. Modelagem perfeita para valorizar a silhueta.",
		Price:       119.90,
		Discount:    5,
		ImageURL:    imgSkinny,
		Images:      []string{imgFloral},
		Category:    "feminino",
		Type:        TypeClothing,
		Sizes:       []string{"34", "36", "38", "40", "42", "44"},
		Colors:      []string{"Azul", "Preto"},
		Stock:       25,
	},
	{
		ID:          "f4",
		Name:        "Sandália Salto Bloco",
		Description: "Sandália com salto bloco de 7cm e tiras delicadas. Confortável para uso durante todo o dia.",
		Price:       149.90,
		Discount:    20,
		ImageURL:    imgSandal,
		Images:      []string{},
		Category:    "feminino",
		Type:        TypeShoes,
		Sizes:       []string{"34", "35", "36", "37", "38", "39"},
		Colors:      []string{"Nude", "Preto", "Vermelho"},
		Stock:       12,
		Featured:    true,
	},
	{
		ID:             "m1",
		Name:           "Camiseta Básica Gola V",
		Description:    "Camiseta básica com gola V, confeccionada em algodão premium. Confortável para uso diário.",
		Price:          49.90,
		ImageURL:       imgDenim,
		Images:         []string{imgShirt},
		Category:       "masculino",
		Type:           TypeClothing,
		Sizes:          []string{"P", "M", "G", "GG", "XG"},
		Colors:         []string{"Branco", "Preto", "Cinza", "Azul Marinho"},
		Stock:          30,
		Featured:       true,
		ShowOnHomepage: true,
	},
	{
		ID:          "m2",
		Name:        "Calça Jeans Reta",
		Description: "Calça jeans de modelagem reta, confortável e durável. Combina com diversos tipos de looks.",
		Price:       129.90,
		Discount:    10,
		ImageURL:    imgShirt,
		Images:      []string{imgDenim},
		Category:    "masculino",
		Type:        TypeClothing,
		Sizes:       []string{"38", "40", "42", "44", "46", "48"},
		Colors:      []string{"Azul", "Preto", "Azul Escuro"},
		Stock:       20,
	},
	{
		ID:             "m3",
		Name:           "Camisa Social Slim",
		Description:    "Camisa social de modelagem slim, confeccionada em tecido premium com acabamento em detalhes.",
		Price:          89.90,
		ImageURL:       imgDress,
		Images:         []string{imgShirt},
		Category:       "masculino",
		Type:           TypeClothing,
		Sizes:          []string{"1", "2", "3", "4", "5"},
		Colors:         []string{"Branco", "Azul Claro", "Listrado"},
		Stock:          15,
		Featured:       true,
		ShowOnHomepage: true,
	},
	{
		ID:          "m4",
		Name:        "Tênis Casual Couro",
		Description: "Tênis casual em couro legítimo, solado em borracha antiderrapante e forro acolchoado.",
		Price:       179.90,
		Discount:    15,
		ImageURL:    imgSneaker,
		Images:      []string{imgRunner},
		Category:    "masculino",
		Type:        TypeShoes,
		Sizes:       []string{"38", "39", "40", "41", "42", "43"},
		Colors:      []string{"Preto", "Marrom", "Branco"},
		Stock:       10,
		Featured:    true,
	},
	{
		ID:          "k1",
		Name:        "Conjunto Infantil Menina",
		Description: "Conjunto infantil para menina com blusa estampada e short confortável. Ideal para dias quentes.",
		Price:       79.90,
		Discount:    5,
		ImageURL:    imgKidsSet,
		Images:      []string{},
		Category:    "kids",
		Type:        TypeClothing,
		Sizes:       []string{"2", "4", "6", "8", "10"},
		Colors:      []string{"Rosa", "Lilás", "Azul"},
		Stock:       20,
		Featured:    true,
	},
	{
		ID:          "k2",
		Name:        "Camiseta Infantil Estampada",
		Description: "Camiseta infantil com estampa divertida, confeccionada em algodão. Perfeita para o dia a dia.",
		Price:       39.90,
		ImageURL:    imgKidsTee,
		Images:      []string{},
		Category:    "kids",
		Type:        TypeClothing,
		Sizes:       []string{"2", "4", "6", "8", "10", "12"},
		Colors:      []string{"Azul", "Vermelho", "Verde"},
		Stock:       25,
	},
	{
		ID:          "k3",
		Name:        "Tênis Infantil Velcro",
		Description: "Tênis infantil com fechamento em velcro para facilitar o calçar. Solado confortável e seguro.",
		Price:       99.90,
		Discount:    10,
		ImageURL:    imgKidsShoe,
		Images:      []string{},
		Category:    "kids",
		Type:        TypeShoes,
		Sizes:       []string{"24", "25", "26", "27", "28", "29", "30"},
		Colors:      []string{"Vermelho", "Azul", "Preto"},
		Stock:       15,
		Featured:    true,
	},
	{
		ID:          "a1",
		Name:        "Bolsa Transversal Média",
		Description: "Bolsa transversal média com acabamento em couro ecológico e detalhe em metal dourado.",
		Price:       89.90,
		ImageURL:    imgBag,
		Images:      []string{},
		Category:    "acessórios",
		Type:        TypeAccessory,
		Sizes:       []string{"Único"},
		Colors:      []string{"Preto", "Caramelo", "Vermelho"},
		Stock:       10,
		Featured:    true,
	},
	{
		ID:          "a2",
		Name:        "Cinto Couro Fivela Clássica",
		Description: "Cinto em couro legítimo com fivela clássica em metal. Perfeito para looks formais e casuais.",
		Price:       59.90,
		Discount:    5,
		ImageURL:    imgBelt,
		Images:      []string{},
		Category:    "acessórios",
		Type:        TypeAccessory,
		Sizes:       []string{"85", "90", "95", "100", "105"},
		Colors:      []string{"Preto", "Marrom"},
		Stock:       20,
	},
	{
		ID:          "a3",
		Name:        "Óculos de Sol Retrô",
		Description: "Óculos de sol com design retrô, armação em acetato e lentes com proteção UV.",
		Price:       119.90,
		Discount:    15,
		ImageURL:    imgSunglasses,
		Images:      []string{},
		Category:    "acessórios",
		Type:        TypeAccessory,
		Sizes:       []string{"Único"},
		Colors:      []string{"Preto", "Tartaruga", "Transparente"},
		Stock:       8,
		Featured:    true,
	},
	{
		ID:          "s1",
		Name:        "Tênis Running Performance",
		Description: "Tênis para corrida com tecnologia de amortecimento e suporte para treinos de alta intensidade.",
		Price:       249.90,
		Discount:    10,
		ImageURL:    imgRunner,
		Images:      []string{imgSneaker},
		Category:    "calçados",
		Type:        TypeShoes,
		Sizes:       []string{"38", "39", "40", "41", "42", "43"},
		Colors:      []string{"Preto/Verde", "Azul/Laranja", "Cinza/Vermelho"},
		Stock:       10,
		Featured:    true,
	},
	{
		ID:          "s2",
		Name:        "Bota Chelsea Tratorada",
		Description: "Bota estilo Chelsea com solado tratorado, elástico nas laterais e puxador traseiro.",
		Price:       199.90,
		Discount:    25,
		ImageURL:    imgChelsea,
		Images:      []string{},
		Category:    "calçados",
		Type:        TypeShoes,
		Sizes:       []string{"35", "36", "37", "38", "39"},
		Colors:      []string{"Preto", "Marrom Escuro"},
		Stock:       5,
	},
	{
		ID:          "s3",
		Name:        "Bota Cano Curto Feminina",
		Description: "Bota feminina de cano curto em couro sintético com zíper lateral e salto bloco de 5cm.",
		Price:       179.90,
		Discount:    20,
		ImageURL:    imgAnkleBoot,
		Images:      []string{},
		Category:    "calçados",
		Type:        TypeShoes,
		Sizes:       []string{"34", "35", "36", "37", "38", "39"},
		Colors:      []string{"Preto", "Caramelo"},
		Stock:       8,
		Featured:    true,
	},
}
