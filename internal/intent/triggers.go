package intent

// Trigger vocabularies for the routing decision table. Matching is
// case-insensitive substring containment; the sets are evaluated in the
// order they appear in defaultRules.

// hotelTriggers covers property types, amenities, star/price phrasing and
// destination names. Checked first: an utterance naming a destination and a
// research term (e.g. weather) still classifies as a hotel search, because
// domain queries are assumed to dominate. That ordering is a fixed contract.
var hotelTriggers = []string{
	// property vocabulary
	"отель", "отели", "гостиница", "гостинец",
	"бронь", "забронировать", "хочу остановиться",
	"где остановиться", "жилье", "апартамент",
	"буклет", "каталог отелей",
	"поиск отеля", "подберите отель", "рекомендуй отель",
	"hotel", "resort",

	// amenities
	"детский клуб", "kids club",
	"all inclusive", "all-inclusive", "олл инклюзив",
	"аквапарк", "aquapark",
	"спа", "spa", "массаж",
	"бассейн", "pool", "пляж",

	// property types and classes
	"курорт", "пансионат", "санаторий",
	"5 звёзд", "4 звёзд", "3 звёзд",
	"люкс", "premium", "эконом",

	// destinations
	"сочи", "анапа", "ялта", "крым",
	"турция", "турции", "анталья", "кемер", "мармарис",
	"египет", "египте", "хургада", "шарм-эль-шейх",
	"таиланд", "пхукет", "паттайя", "бангкок",
	"оаэ", "дубай", "абу-даби",
	"мальдив", "мале",
	"греция", "крит", "афины",
	"испания", "барселона", "мадрид",

	// filter phrasing
	"до ", "от ",
	"рублей", "₽", "руб",
	"звёзд", "звезд", "звезды",
	"с детьми", "для семьи", "с ребенком",
	"с пляжем", "с бассейном",
	"недорог", "дешев", "бюджет",
}

// researchTriggers covers travel-info lookups handled outside the retrieval
// pipeline: weather, flights, currency, transport, visas, seasons, sights.
var researchTriggers = []string{
	// weather
	"погода", "weather", "температура", "климат", "climate",
	"тепло", "холодно", "дождь", "снег", "солнечно",
	"ветер", "влажность", "прогноз", "forecast",

	// flights
	"авиабилет", "рейс", "перелет", "flight",
	"сколько стоит билет", "билет",

	// currency
	"курс", "валюта", "доллар", "евро", "рубль",
	"exchange rate", "currency", "usd", "eur",

	// transport
	"как добраться", "транспорт", "такси", "метро",
	"автобус", "поезд", "маршрут", "route",

	// documents
	"виза", "страховка", "документы", "паспорт", "visa", "insurance",

	// seasons
	"когда лучше", "сезон", "когда ехать", "best time",
	"когда дешевле", "high season", "low season",

	// sights and local info
	"что посмотреть", "достопримечательность", "музей",
	"культура", "история", "museum", "attractions",
	"информация о", "расскажи о", "узнать о", "tell me about",
	"как там", "что там",
	"режим работы", "часы работы", "расписание",
	"местная кухня", "еда", "блюдо", "cuisine", "food",
	"как одеться", "что брать", "what to pack",

	// generic lookups
	"найди", "ищу", "цена", "стоимость", "сколько стоит",
}
