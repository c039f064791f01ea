// AngelaMos | 2026
// tables.go

package knowledge

const unknownDescription = "Disease information not available"

var diseaseTable = map[string]DiseaseInfo{
	"Acne": {
		Description: "Acne is a skin condition characterized by pimples, blackheads, and whiteheads. It typically appears on the face, chest, and back.",
		Causes: []string{
			"Excess oil production",
			"Clogged pores",
			"Bacterial growth",
			"Hormonal changes",
			"Certain medications",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Occasional pimples and blackheads",
			SeverityModerate: "Numerous pimples, pustules, and some redness",
			SeveritySevere:   "Deep cystic acne, significant inflammation, widespread affected areas",
		},
	},
	"Eczema": {
		Description: "Eczema is an inflammatory skin condition causing itching, redness, and dry patches. It's often called atopic dermatitis.",
		Causes: []string{
			"Genetic predisposition",
			"Immune system dysfunction",
			"Environmental triggers",
			"Dry skin",
			"Stress",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Slight itching and redness",
			SeverityModerate: "Significant itching, visible redness, dry patches",
			SeveritySevere:   "Intense itching, severe inflammation, blistering, skin thickening",
		},
	},
	"Psoriasis": {
		Description: "Psoriasis is an autoimmune skin condition causing thick, red, scaly patches. It's usually itchy or painful.",
		Causes: []string{
			"Genetic factors",
			"Immune system malfunction",
			"Stress",
			"Infections",
			"Medications",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Small patches covering less than 3% of body",
			SeverityModerate: "Patches covering 3-10% of body surface",
			SeveritySevere:   "Patches covering more than 10% of body, significant pain/itching",
		},
	},
	"Fungal Infection": {
		Description: "Fungal infections of the skin are caused by fungal organisms. Common types include ringworm and athlete's foot.",
		Causes: []string{
			"Fungal organism exposure",
			"Warm, moist environment",
			"Poor hygiene",
			"Weakened immune system",
			"Skin injuries",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Small localized patches with minimal symptoms",
			SeverityModerate: "Larger affected areas with itching and redness",
			SeveritySevere:   "Widespread infection, severe itching, secondary infections",
		},
	},
	"Dermatitis": {
		Description: "Dermatitis is inflammation of the skin caused by allergic reactions or irritants. Includes contact dermatitis and seborrheic dermatitis.",
		Causes: []string{
			"Allergic reactions",
			"Irritating substances",
			"Environmental factors",
			"Sensitivity to products",
			"Underlying conditions",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Slight redness and itching",
			SeverityModerate: "Visible inflammation, itching, possible blistering",
			SeveritySevere:   "Severe inflammation, intense itching, widespread blistering, skin breakdown",
		},
	},
	"Pigmentation Disorder": {
		Description: "Pigmentation disorders result in abnormal coloring of the skin. Can appear as patches of lighter or darker skin.",
		Causes: []string{
			"Sun exposure",
			"Genetic factors",
			"Hormonal changes",
			"Skin injuries",
			"Inflammatory conditions",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Minimal visible discoloration",
			SeverityModerate: "Noticeable patches of discoloration",
			SeveritySevere:   "Extensive discoloration, significant cosmetic impact",
		},
	},
	"Hemangioma": {
		Description: "A hemangioma is a benign growth of blood vessels that appears as a red or purple raised mark. Most are harmless and many fade over time.",
		Causes: []string{
			"Abnormal blood vessel growth",
			"Genetic factors",
			"Hormonal influences",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Small flat mark without symptoms",
			SeverityModerate: "Raised growth that is enlarging",
			SeveritySevere:   "Bleeding, ulceration, or growth near the eyes, nose or mouth",
		},
	},
	"Melanoma": {
		Description: "Melanoma is a serious form of skin cancer that develops in pigment-producing cells. Early detection by a dermatologist is critical.",
		Causes: []string{
			"UV radiation exposure",
			"History of sunburns",
			"Many or atypical moles",
			"Family history of melanoma",
			"Fair skin",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Small lesion with subtle irregularity",
			SeverityModerate: "Asymmetric lesion with irregular border or color",
			SeveritySevere:   "Rapidly changing, bleeding, or large irregular lesion",
		},
	},
	"Nevus": {
		Description: "A nevus (mole) is a common, usually benign cluster of pigment cells. Changes in size, shape or color should be checked.",
		Causes: []string{
			"Clustering of melanocytes",
			"Sun exposure",
			"Genetic factors",
		},
		SeverityIndicators: map[Severity]string{
			SeverityMild:     "Uniform, symmetric mole",
			SeverityModerate: "Mole with slight irregularity",
			SeveritySevere:   "Mole that is changing, itching or bleeding",
		},
	},
	"Healthy Skin": {
		Description:        "No skin condition was detected in the image. Keep up a consistent skin care routine.",
		Causes:             []string{},
		SeverityIndicators: map[Severity]string{},
	},
}

var remedyTable = map[string][]string{
	"Acne": {
		"Tea tree oil: Apply diluted tea tree oil (2-3 drops in carrier oil) to affected areas",
		"Honey mask: Apply raw honey as a face mask for 15-20 minutes, 2-3 times weekly",
		"Aloe vera gel: Apply fresh aloe vera gel to calm inflammation",
		"Green tea: Use cooled green tea as a face wash or compress",
		"Lemon juice: Dilute with water and use as a spot treatment (use sunscreen after)",
	},
	"Eczema": {
		"Coconut oil: Apply virgin coconut oil to moisturize dry areas",
		"Oatmeal bath: Soak in warm water with colloidal oatmeal for 15-20 minutes",
		"Aloe vera: Apply aloe vera gel to soothe irritated skin",
		"Apple cider vinegar: Dilute and apply as a rinse (patch test first)",
		"Chamomile: Use chamomile tea bags as warm compresses",
	},
	"Psoriasis": {
		"Dead Sea salt bath: Soak for 10-15 minutes to reduce scaling",
		"Aloe vera: Apply aloe vera gel to reduce inflammation",
		"Turmeric: Mix with coconut oil for anti-inflammatory benefits",
		"Apple cider vinegar: Dilute and use as a rinse",
		"Moisturize heavily: Use natural oils like jojoba or argan oil",
	},
	"Fungal Infection": {
		"Tea tree oil: Apply diluted tea tree oil to affected areas daily",
		"Apple cider vinegar: Soak affected areas in diluted apple cider vinegar",
		"Garlic: Apply crushed garlic mixed in coconut oil",
		"Neem oil: Apply neem oil for antifungal properties",
		"Keep dry: Ensure area is dry, use talc-free powder if needed",
	},
	"Dermatitis": {
		"Coconut oil: Use as a natural moisturizer",
		"Oatmeal: Create a paste and apply to affected areas",
		"Aloe vera: Apply to soothe irritation",
		"Avoid irritants: Identify and avoid triggering substances",
		"Colloidal oatmeal bath: Soak to reduce itching",
	},
	"Melanoma": {
		"No home remedy can treat melanoma: book a dermatologist visit as soon as possible",
		"Protect the area from sun exposure until it is examined",
		"Photograph the lesion to track any change before your appointment",
	},
	"Healthy Skin": {
		"Gentle cleanser: Wash twice daily with a mild, pH-balanced cleanser",
		"Moisturize: Apply a non-comedogenic moisturizer after washing",
		"Sunscreen: Use broad-spectrum SPF 30+ every morning",
	},
}

var defaultRemedies = []string{
	"Keep the area clean and dry",
	"Use a fragrance-free moisturizer to protect the skin barrier",
	"Avoid scratching or picking at the affected area",
	"Apply broad-spectrum sunscreen on exposed skin",
}

var dietTable = map[string]DietAdvice{
	"Acne": {
		Eat: []string{
			"Fatty fish (salmon, mackerel) - rich in omega-3 fatty acids",
			"Berries - high in antioxidants",
			"Leafy greens (spinach, kale) - contain vitamins and minerals",
			"Green tea - has anti-inflammatory properties",
			"Dark chocolate (70%+ cocoa) - in moderation",
		},
		Avoid: []string{
			"Dairy products - may trigger acne",
			"High-glycemic foods (white bread, sugary items)",
			"Processed foods with trans fats",
			"High-iodine foods (seaweed, shellfish)",
			"Excess sugar and refined carbohydrates",
		},
		Water:       "8-10 glasses daily",
		Supplements: []string{"Zinc", "Vitamin A", "Vitamin E", "B-complex vitamins"},
	},
	"Eczema": {
		Eat: []string{
			"Fatty fish - omega-3 reduces inflammation",
			"Olive oil - anti-inflammatory",
			"Fruits and vegetables - antioxidants",
			"Nuts and seeds - essential fatty acids",
			"Probiotics (yogurt, kefir) - supports immune health",
		},
		Avoid: []string{
			"Common allergens (eggs, peanuts, tree nuts, dairy)",
			"Processed foods - may trigger flare-ups",
			"Alcohol - can irritate skin",
			"Spicy foods - may trigger reactions",
			"Foods with artificial additives",
		},
		Water:       "8-10 glasses daily",
		Supplements: []string{"Omega-3", "Vitamin D", "Probiotics", "Quercetin"},
	},
	"Psoriasis": {
		Eat: []string{
			"Fatty fish - omega-3s reduce inflammation",
			"Fruits and vegetables - antioxidants",
			"Whole grains - fiber and nutrients",
			"Olive oil - anti-inflammatory",
			"Turmeric - contains curcumin with healing properties",
		},
		Avoid: []string{
			"Refined sugars - worsen inflammation",
			"Trans fats and excessive saturated fats",
			"Alcohol - triggers flare-ups",
			"Processed meats",
			"Nightshade vegetables (tomatoes, peppers) - may trigger in some",
		},
		Water:       "10-12 glasses daily",
		Supplements: []string{"Fish oil", "Vitamin D", "Vitamin B12", "Folic acid"},
	},
}

var defaultDiet = DietAdvice{
	Eat:         []string{"Fruits and vegetables", "Plenty of water"},
	Avoid:       []string{"Processed foods", "Sugar"},
	Water:       "8-10 glasses daily",
	Supplements: []string{},
}

var precautionTable = map[string][]string{
	"Acne": {
		"⚠️ Do not squeeze or pick at pimples - can lead to scarring and infection",
		"Use only dermatologist-approved products",
		"Wash face max 2 times daily - more can irritate skin",
		"Avoid touching your face throughout the day",
		"Change pillowcases frequently",
		"Remove makeup before sleeping",
		"Use oil-free makeup and sunscreen",
		"Avoid tight headwear",
		"Do not over-exfoliate - max 2-3 times per week",
	},
	"Eczema": {
		"Avoid scratching - can lead to infection",
		"Use fragrance-free, hypoallergenic products only",
		"Take lukewarm baths/showers, not hot",
		"Pat skin dry gently, don't rub",
		"Moisturize within 3 minutes of bathing",
		"Wear soft, breathable fabrics (cotton, silk)",
		"Avoid harsh detergents and soaps",
		"Minimize stress through relaxation techniques",
		"Maintain consistent humidity in your environment",
	},
	"Psoriasis": {
		"Avoid skin injuries and cuts - triggers lesions",
		"Manage stress effectively",
		"Sleep 7-9 hours daily",
		"Avoid smoking and limit alcohol",
		"Maintain moderate temperature - avoid extremes",
		"Keep skin moisturized to reduce scaling",
		"Avoid harsh soaps and detergents",
		"Protect from sun but get moderate sun exposure",
		"Follow prescribed treatments consistently",
	},
	"Melanoma": {
		"Do not attempt to remove or treat the lesion yourself",
		"Avoid sun exposure and tanning beds",
		"Check the rest of your skin for new or changing moles",
	},
}

var defaultPrecautions = []string{
	"Avoid self-medicating with prescription creams",
	"Patch test any new product before full use",
	"Monitor the area for changes in size, color or texture",
}

var referralTable = map[string][]string{
	"Acne": {
		"When over-the-counter treatments show no improvement after 6-8 weeks",
		"If acne is spreading rapidly",
		"For cystic acne (deep, painful bumps)",
		"If acne is affecting your mental health",
		"For severe inflammation or scarring",
	},
	"Eczema": {
		"If self-care measures don't improve symptoms",
		"When affected areas show signs of infection (warmth, pus, fever)",
		"For severe itching affecting sleep or daily activities",
		"If the condition is worsening or spreading rapidly",
		"For personalized treatment plan and prescription options",
	},
	"Psoriasis": {
		"If over-the-counter treatments are ineffective",
		"When patches cover significant body area",
		"For joint pain (psoriatic arthritis)",
		"If psoriasis is affecting mental health",
		"For guidance on systemic medications if needed",
	},
	"Melanoma": {
		"See a dermatologist promptly, ideally within two weeks",
		"Immediately if the lesion bleeds, itches or changes quickly",
	},
	"Nevus": {
		"If the mole is asymmetric or has an irregular border",
		"If it changes in size, shape or color",
		"If it bleeds, itches or becomes painful",
	},
}

var defaultReferral = []string{
	"If symptoms persist for more than two weeks",
	"If the area becomes painful, swollen or infected",
	"If the condition spreads or gets worse",
}
