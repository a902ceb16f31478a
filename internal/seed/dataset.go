package seed

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
)

// Dataset is the material Run loads. Split out so tests can feed a
// reduced set without touching the curated one.
type Dataset struct {
	Markets    []MarketSeed
	References []models.Reference
}

// MarketSeed pairs a market with the vendors operating inside it.
type MarketSeed struct {
	Market  models.Market
	Vendors []models.Vendor
}

func strPtr(s string) *string { return &s }

// DefaultDataset returns the curated Taipei survey set: three markets,
// their documented vendors, and the bibliography behind the field notes.
func DefaultDataset() Dataset {
	return Dataset{
		Markets: []MarketSeed{
			{
				Market: models.Market{
					ID:             "shilin-night-market",
					Name:           "Shilin Night Market",
					ChineseName:    "士林夜市",
					Location:       "Shilin District, Taipei",
					Latitude:       25.0878,
					Longitude:      121.5240,
					Established:    "1899",
					ResearchFocus:  "tourism-driven transformation",
					Description:    "The largest night market in Taipei, anchored around the Shilin Public Market building and the surrounding street grid.",
					AnalyticalNote: "Vendor interviews suggest the underground food court relocation in 2011 reshaped foot-traffic patterns more than rent levels did.",
					KeyFindings: pq.StringArray{
						"tourist share of evening visitors exceeds 60% on weekends",
						"legacy stalls cluster along Danan Road despite higher rents",
					},
					Image:    "https://images.formosafoodlab.org/markets/shilin.jpg",
					IsActive: true,
				},
				Vendors: []models.Vendor{
					{
						ID:          "hot-star-large-fried-chicken",
						Name:        "Hot-Star Large Fried Chicken",
						ChineseName: "豪大大雞排",
						Description: "Origin stall of the oversized fried chicken cutlet, now an international chain.",
						Latitude:    25.0881,
						Longitude:   121.5243,
						Specialties: pq.StringArray{"fried chicken cutlet", "pepper chicken"},
						Phone:       strPtr("+886-2-2882-1234"),
						IsActive:    true,
					},
					{
						ID:           "zhong-cheng-hao-oyster-omelet",
						Name:         "Zhong Cheng Hao Oyster Omelet",
						ChineseName:  "忠誠號蚵仔煎",
						Description:  "Second-generation seafood stall in the underground food court.",
						Latitude:     25.0875,
						Longitude:    121.5238,
						Specialties:  pq.StringArray{"oyster omelet", "shrimp soup"},
						OpeningHours: strPtr("16:00-00:00"),
						IsActive:     true,
					},
					{
						ID:          "shilin-papaya-milk",
						Name:        "Shilin Papaya Milk",
						ChineseName: "士林木瓜牛奶",
						Description: "Fruit-drink stand operating from the same corner since the 1970s.",
						Latitude:    25.0884,
						Longitude:   121.5247,
						Specialties: pq.StringArray{"papaya milk", "fresh juice"},
						IsActive:    true,
					},
				},
			},
			{
				Market: models.Market{
					ID:             "raohe-street-night-market",
					Name:           "Raohe Street Night Market",
					ChineseName:    "饒河街觀光夜市",
					Location:       "Songshan District, Taipei",
					Latitude:       25.0510,
					Longitude:      121.5769,
					Established:    "1987",
					ResearchFocus:  "linear market morphology",
					Description:    "A single 600-metre pedestrian street running between Ciyou Temple and the Keelung River levee.",
					AnalyticalNote: "The single-axis layout produces a measurable quality gradient: anchor stalls hold both entrances while newer vendors fill the middle.",
					KeyFindings: pq.StringArray{
						"entrance-adjacent stalls turn over inventory twice as fast",
						"temple festival dates correlate with 40% visitor spikes",
					},
					Image:    "https://images.formosafoodlab.org/markets/raohe.jpg",
					IsActive: true,
				},
				Vendors: []models.Vendor{
					{
						ID:          "fuzhou-black-pepper-bun",
						Name:        "Fuzhou Shizu Black Pepper Bun",
						ChineseName: "福州世祖胡椒餅",
						Description: "Charcoal tandoor stall at the Ciyou Temple entrance, queue visible from the arch.",
						Latitude:    25.0508,
						Longitude:   121.5776,
						Specialties: pq.StringArray{"black pepper pork bun"},
						IsActive:    true,
					},
					{
						ID:          "chen-dong-ribs-medicinal-herbs",
						Name:        "Chen Dong Pork Ribs in Medicinal Herbs",
						ChineseName: "陳董藥燉排骨",
						Description: "Herbal soup stall serving braised ribs in a thirteen-herb broth.",
						Latitude:    25.0511,
						Longitude:   121.5763,
						Specialties: pq.StringArray{"herbal pork rib soup", "lamb soup"},
						IsActive:    true,
					},
				},
			},
			{
				Market: models.Market{
					ID:             "ningxia-night-market",
					Name:           "Ningxia Night Market",
					ChineseName:    "寧夏夜市",
					Location:       "Datong District, Taipei",
					Latitude:       25.0567,
					Longitude:      121.5155,
					Established:    "1954",
					ResearchFocus:  "heritage food preservation",
					Description:    "A compact market known for old Taipei dishes, with the highest density of stalls over fifty years old.",
					AnalyticalNote: "Ningxia's vendor association enforces a no-duplicate-dish rule, an unusual institutional arrangement that sustains dish diversity.",
					KeyFindings: pq.StringArray{
						"over a third of stalls are run by third-generation operators",
						"the shared grease-trap system cut water pollution fines to zero",
					},
					Image:    "https://images.formosafoodlab.org/markets/ningxia.jpg",
					IsActive: true,
				},
				Vendors: []models.Vendor{
					{
						ID:          "liu-yu-zai-taro-balls",
						Name:        "Liu Yu Zai Deep-Fried Taro Balls",
						ChineseName: "劉芋仔蛋黃芋餅",
						Description: "Michelin Bib Gourmand stall frying taro pastries filled with salted egg yolk.",
						Latitude:    25.0569,
						Longitude:   121.5154,
						Specialties: pq.StringArray{"taro ball", "egg yolk taro cake"},
						IsActive:    true,
					},
					{
						ID:          "rong-ji-braised-pork-rice",
						Name:        "Rong Ji Braised Pork Rice",
						ChineseName: "榮記滷肉飯",
						Description: "Braised pork rice counter operating since the market's founding decade.",
						Latitude:    25.0565,
						Longitude:   121.5157,
						Specialties: pq.StringArray{"braised pork rice", "miso soup"},
						IsActive:    true,
					},
				},
			},
		},
		References: []models.Reference{
			{
				ID:          uuid.New(),
				Authors:     "Yu, Shuenn-Der",
				Year:        2004,
				Title:       "Hot and Noisy: Taiwan's Night Market Culture",
				Publication: "The Minor Arts of Daily Life: Popular Culture in Taiwan",
				Category:    "ethnography",
				Annotation:  "Foundational account of renao (熱鬧) as the organizing aesthetic of market sociality.",
			},
			{
				ID:          uuid.New(),
				Authors:     "Chen, Ying-Hsiu; Huang, Li-Wen",
				Year:        2014,
				Title:       "Street Vendors and the Negotiation of Public Space in Taipei",
				Publication: "Urban Studies 51(4)",
				DOI:         strPtr("10.1177/0042098013494426"),
				Category:    "urban-policy",
				Annotation:  "Traces the licensing regime that formalized Raohe and Ningxia while displacing unlicensed peddlers.",
			},
			{
				ID:          uuid.New(),
				Authors:     "Wu, Pei-Ling",
				Year:        2019,
				Title:       "Culinary Heritage as Living Archive: Three Generations at Ningxia",
				Publication: "Journal of Ethnic Foods 6(1)",
				URL:         strPtr("https://journalethnicfoods.biomedcentral.com/articles/ningxia-heritage"),
				Category:    "food-heritage",
				Annotation:  "Oral-history study underpinning the heritage-preservation findings recorded against Ningxia.",
			},
			{
				ID:          uuid.New(),
				Authors:     "Lin, Chia-Hung",
				Year:        2021,
				Title:       "Night Market Tourism and Vendor Adaptation after the Shilin Relocation",
				Publication: "Tourism Geographies 23(5)",
				DOI:         strPtr("10.1080/14616688.2020.1765010"),
				Category:    "tourism",
				Annotation:  "Longitudinal vendor survey cited in the Shilin analytical note.",
			},
		},
	}
}
