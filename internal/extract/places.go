package extract

// placeGroup maps a canonical place name to the surface forms that imply it.
// Stems are matched by case-insensitive substring containment, so a single
// stem covers the Russian case endings ("турц" matches "Турции", "Турцию").
type placeGroup struct {
	name  string
	stems []string
}

// countryGroups is ordered; only the first matching group sets the country.
// City and alias stems that unambiguously imply a country are listed too.
var countryGroups = []placeGroup{
	{name: "Египет", stems: []string{"египет", "египт", "хургад", "шарм"}},
	{name: "Турция", stems: []string{"турц", "антал", "кемер", "мармарис"}},
	{name: "Таиланд", stems: []string{"таиланд", "тайланд", "пхукет", "пукет", "паттай"}},
	{name: "ОАЭ", stems: []string{"оаэ", "эмират", "дубай", "абу-даби"}},
	{name: "Мальдивы", stems: []string{"мальдив"}},
	{name: "Россия", stems: []string{"росси", "сочи", "анап", "ялт", "крым"}},
	{name: "Греция", stems: []string{"грец", "крит", "афин"}},
	{name: "Испания", stems: []string{"испан", "барселон", "мадрид"}},
}

// cityGroups is evaluated independently of countryGroups; first match wins.
var cityGroups = []placeGroup{
	{name: "Анталья", stems: []string{"антал"}},
	{name: "Кемер", stems: []string{"кемер"}},
	{name: "Сочи", stems: []string{"сочи"}},
	{name: "Анапа", stems: []string{"анап"}},
	{name: "Ялта", stems: []string{"ялт"}},
	{name: "Дубай", stems: []string{"дубай"}},
	{name: "Хургада", stems: []string{"хургад"}},
	{name: "Пхукет", stems: []string{"пхукет", "пукет"}},
	{name: "Бангкок", stems: []string{"бангкок"}},
	{name: "Барселона", stems: []string{"барселон"}},
}
