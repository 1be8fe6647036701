package prompt

import "math/rand/v2"

// Topics is the catalog used when the caller does not name one. It mixes
// general English-learning subjects with Taiwan-specific culture, daily life,
// food, history, and festival topics for local learners.
var Topics = []string{
	"Daily Routines in Different Cultures",
	"Popular Hobbies and Leisure Activities",
	"Types of Food and Cuisine Around the World",
	"Festivals and Celebrations",
	"Fashion Trends and Clothing",
	"Family Structures and Relationships",
	"Modes of Transportation",
	"Shopping Habits and Consumerism",
	"Social Etiquette and Customs",
	"Urban vs. Rural Living",
	"The Impact of Artificial Intelligence",
	"Renewable Energy Sources",
	"Space Exploration and Discoveries",
	"The Human Body and Health",
	"Climate Change and Environmental Issues",
	"The Internet and Social Media",
	"Breakthroughs in Medicine",
	"Robotics and Automation",
	"Genetically Modified Foods",
	"The Science of Sleep",
	"Ancient Civilizations (e.g., Egypt, Rome, Maya)",
	"Famous Inventors and Their Inventions",
	"Significant World Wars and Conflicts",
	"The Renaissance Period",
	"Biographies of Influential Leaders",
	"The Industrial Revolution",
	"The Civil Rights Movement",
	"Exploration and Discovery Ages",
	"The Roaring Twenties",
	"The Cold War Era",
	"Different Genres of Music",
	"Famous Painters and Art Movements",
	"Types of Literature (e.g., novels, poetry, drama)",
	"The History of Cinema",
	"Shakespearean Plays and Sonnets",
	"Photography as an Art Form",
	"Architectural Styles",
	"The World of Dance",
	"Famous Authors and Their Works",
	"Mythology and Folklore",
	"Globalization and Its Effects",
	"Education Systems in Different Countries",
	"Poverty and Inequality",
	"Human Rights",
	"The Importance of Volunteering",
	"Wildlife Conservation",
	"The Future of Work",
	"Mental Health Awareness",
	"Sustainable Development Goals",
	"The Role of Media in Society",
	"Taiwanese Hospitality and Friendliness",
	"Confucian Values in Taiwan (e.g., filial piety, respect for elders)",
	"The Concept of 'Face' in Taiwanese Culture",
	"Taiwanese Family Structure and Importance",
	"Religion in Taiwan (Buddhism, Daoism, Folk Religions, Ancestor Worship)",
	"Indigenous Cultures of Taiwan (e.g., Amis, Atayal, Bunun)",
	"Taiwanese Pop Culture (KTV, TV shows, Anime/Manga influence)",
	"Traditional Taiwanese Arts (Opera, Puppet Theater)",
	"Modern Taiwanese Art and Music Scene",
	"Social Etiquette and Customs in Taiwan",
	"Gift-giving etiquette in Taiwan",
	"Public decorum and group harmony",
	"Daily Commute in Taiwan (scooters, public transport)",
	"Convenience Stores in Taiwan (7-Eleven, FamilyMart)",
	"Public Health Care System in Taiwan",
	"Safety and Low Crime Rate in Taiwan",
	"Weather and Climate in Taiwan (subtropical, typhoons)",
	"Air Pollution in Taiwanese Cities",
	"Recycling and Waste Management in Taiwan",
	"Challenges of Living in Big Cities (Taipei: traffic, noise)",
	"Outdoor Activities in Taiwan (hiking, hot springs, cycling)",
	"Taiwan's Natural Beauty (mountains, coastlines, Taroko Gorge)",
	"Learning Mandarin Chinese in Taiwan",
	"Importance of English in Taiwan (academics, career)",
	"Education System and Academic Pressure",
	"Taiwanese Night Markets (types of food, atmosphere)",
	"Bubble Tea (Boba) - its origin and varieties",
	"Famous Taiwanese Dishes (Beef Noodles, Oyster Omelette, Gua Bao)",
	"Street Food Culture in Taiwan",
	"Taiwanese Hot Pot",
	"Pineapple Cakes and other traditional snacks",
	"Local Fruits of Taiwan (seasonal varieties)",
	"Taiwanese Tea Culture (Oolong tea, High Mountain Tea)",
	"Stinky Tofu (description, how it's eaten)",
	"Breakfast in Taiwan (e.g., soy milk, fried dough sticks)",
	"Dining Etiquette in Taiwan",
	"Vegetarian options in Taiwan",
	"Taiwan's Colonial History (Dutch, Spanish, Qing Dynasty, Japanese Rule)",
	"The 'Ilha Formosa' - the Beautiful Island",
	"Post-WWII History and KMT Relocation to Taiwan",
	"Taiwan's Democratic Transition (lifting of martial law)",
	"Cross-Strait Relations (Taiwan's relationship with mainland China)",
	"Taiwan's International Status and Recognition",
	"Taiwan as an 'Asian Tiger' (economic development)",
	"Taiwan's role in global technology and manufacturing (e.g., semiconductors)",
	"Lunar New Year (Spring Festival) customs and traditions",
	"Lantern Festival (Pingxi Sky Lanterns, Yanshui Beehive Fireworks)",
	"Dragon Boat Festival (dragon boat racing, Zongzi)",
	"Mid-Autumn Festival (Moon Festival, mooncakes, barbecues)",
	"Tomb Sweeping Day (Qingming Festival)",
	"Matsu's Birthday (religious parades and celebrations)",
	"Ghost Festival (Zhongyuan Festival)",
	"National Day (Double Ten Day)",
	"Indigenous Harvest Festivals (e.g., Amis Harvest Festival)",
	"Modern Festivals and Events (e.g., music festivals, balloon festival)",
}

// RandomTopic picks a topic from the catalog.
func RandomTopic() string {
	return Topics[rand.IntN(len(Topics))]
}
