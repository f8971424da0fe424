package gazetteer

func city(name, state string, lat, lng float64, aliases ...string) City {
	return City{Place: Place{Name: name, State: state, Lat: lat, Lng: lng}, Aliases: aliases}
}

var indiaCities = []City{
	city("Mumbai", "Maharashtra", 19.0760, 72.8777, "Bombay"),
	city("Kolkata", "West Bengal", 22.5726, 88.3639, "Calcutta"),
	city("Delhi", "Delhi", 28.6139, 77.2090, "New Delhi"),
	city("Chennai", "Tamil Nadu", 13.0827, 80.2707, "Madras"),
	city("Bengaluru", "Karnataka", 12.9716, 77.5946, "Bangalore"),
	city("Hyderabad", "Telangana", 17.3850, 78.4867),
	city("Pune", "Maharashtra", 18.5204, 73.8567),
	city("Ahmedabad", "Gujarat", 23.0225, 72.5714),
	city("Jaipur", "Rajasthan", 26.9124, 75.7873),
	city("Lucknow", "Uttar Pradesh", 26.8467, 80.9462),
	city("Kanpur", "Uttar Pradesh", 26.4499, 80.3319),
	city("Nagpur", "Maharashtra", 21.1458, 79.0882),
	city("Thane", "Maharashtra", 19.2183, 72.9781),
	city("Nashik", "Maharashtra", 19.9975, 73.7898),
	city("Aurangabad", "Maharashtra", 19.8762, 75.3433),
	city("Kolhapur", "Maharashtra", 16.7050, 74.2433),
	city("Ratnagiri", "Maharashtra", 16.9902, 73.3120),
	city("Indore", "Madhya Pradesh", 22.7196, 75.8577),
	city("Bhopal", "Madhya Pradesh", 23.2599, 77.4126),
	city("Jabalpur", "Madhya Pradesh", 23.1815, 79.9864),
	city("Patna", "Bihar", 25.5941, 85.1376),
	city("Gaya", "Bihar", 24.7914, 85.0002),
	city("Muzaffarpur", "Bihar", 26.1209, 85.3647),
	city("Surat", "Gujarat", 21.1702, 72.8311),
	city("Vadodara", "Gujarat", 22.3072, 73.1812, "Baroda"),
	city("Rajkot", "Gujarat", 22.3039, 70.8022),
	city("Bhuj", "Gujarat", 23.2420, 69.6669),
	city("Visakhapatnam", "Andhra Pradesh", 17.6868, 83.2185, "Vizag"),
	city("Vijayawada", "Andhra Pradesh", 16.5062, 80.6480),
	city("Nellore", "Andhra Pradesh", 14.4426, 79.9865),
	city("Kakinada", "Andhra Pradesh", 16.9891, 82.2475),
	city("Warangal", "Telangana", 17.9689, 79.5941),
	city("Bhubaneswar", "Odisha", 20.2961, 85.8245),
	city("Cuttack", "Odisha", 20.4625, 85.8830),
	city("Puri", "Odisha", 19.8135, 85.8312),
	city("Balasore", "Odisha", 21.4942, 86.9335),
	city("Guwahati", "Assam", 26.1445, 91.7362),
	city("Silchar", "Assam", 24.8333, 92.7789),
	city("Dibrugarh", "Assam", 27.4728, 94.9120),
	city("Shillong", "Meghalaya", 25.5788, 91.8933),
	city("Imphal", "Manipur", 24.8170, 93.9368),
	city("Agartala", "Tripura", 23.8315, 91.2868),
	city("Aizawl", "Mizoram", 23.7271, 92.7176),
	city("Kohima", "Nagaland", 25.6751, 94.1086),
	city("Itanagar", "Arunachal Pradesh", 27.0844, 93.6053),
	city("Gangtok", "Sikkim", 27.3389, 88.6065),
	city("Darjeeling", "West Bengal", 27.0410, 88.2663),
	city("Siliguri", "West Bengal", 26.7271, 88.3953),
	city("Thiruvananthapuram", "Kerala", 8.5241, 76.9366, "Trivandrum"),
	city("Kochi", "Kerala", 9.9312, 76.2673, "Cochin"),
	city("Kozhikode", "Kerala", 11.2588, 75.7804, "Calicut"),
	city("Madurai", "Tamil Nadu", 9.9252, 78.1198),
	city("Coimbatore", "Tamil Nadu", 11.0168, 76.9558),
	city("Tiruchirappalli", "Tamil Nadu", 10.7905, 78.7047, "Trichy"),
	city("Cuddalore", "Tamil Nadu", 11.7480, 79.7714),
	city("Nagapattinam", "Tamil Nadu", 10.7672, 79.8449),
	city("Mangaluru", "Karnataka", 12.9141, 74.8560, "Mangalore"),
	city("Mysuru", "Karnataka", 12.2958, 76.6394, "Mysore"),
	city("Panaji", "Goa", 15.4909, 73.8278),
	city("Srinagar", "Jammu and Kashmir", 34.0837, 74.7973),
	city("Jammu", "Jammu and Kashmir", 32.7266, 74.8570),
	city("Leh", "Ladakh", 34.1526, 77.5771),
	city("Shimla", "Himachal Pradesh", 31.1048, 77.1734),
	city("Manali", "Himachal Pradesh", 32.2432, 77.1892),
	city("Dehradun", "Uttarakhand", 30.3165, 78.0322),
	city("Haridwar", "Uttarakhand", 29.9457, 78.1642),
	city("Nainital", "Uttarakhand", 29.3919, 79.4542),
	city("Chandigarh", "Chandigarh", 30.7333, 76.7794),
	city("Amritsar", "Punjab", 31.6340, 74.8723),
	city("Ludhiana", "Punjab", 30.9010, 75.8573),
	city("Ranchi", "Jharkhand", 23.3441, 85.3096),
	city("Jamshedpur", "Jharkhand", 22.8046, 86.2029),
	city("Dhanbad", "Jharkhand", 23.7957, 86.4304),
	city("Raipur", "Chhattisgarh", 21.2514, 81.6296),
	city("Varanasi", "Uttar Pradesh", 25.3176, 82.9739),
	city("Prayagraj", "Uttar Pradesh", 25.4358, 81.8463, "Allahabad"),
	city("Agra", "Uttar Pradesh", 27.1767, 78.0081),
	city("Gorakhpur", "Uttar Pradesh", 26.7606, 83.3732),
	city("Jodhpur", "Rajasthan", 26.2389, 73.0243),
	city("Udaipur", "Rajasthan", 24.5854, 73.7125),
	city("Bikaner", "Rajasthan", 28.0229, 73.3119),
	city("Kota", "Rajasthan", 25.2138, 75.8648),
	city("Port Blair", "Andaman and Nicobar Islands", 11.6234, 92.7265),
	city("Puducherry", "Puducherry", 11.9416, 79.8083),
}

// The first seven entries keep the order the feed's free-text fallback has
// always used; state names follow.
var indiaRegions = []Region{
	{Pattern: "tamil nadu", Place: Place{Name: "Tamil Nadu", State: "Tamil Nadu", Lat: 11.1271, Lng: 78.6569}},
	{Pattern: "andaman", Place: Place{Name: "Andaman and Nicobar", State: "Andaman and Nicobar Islands", Lat: 11.6234, Lng: 92.7265}},
	{Pattern: "nicobar", Place: Place{Name: "Nicobar Islands", State: "Andaman and Nicobar Islands", Lat: 7.1395, Lng: 93.7784}},
	{Pattern: "madhya pradesh", Place: Place{Name: "Madhya Pradesh", State: "Madhya Pradesh", Lat: 22.9734, Lng: 78.6569}},
	{Pattern: "telangana", Place: Place{Name: "Telangana", State: "Telangana", Lat: 18.1124, Lng: 79.0193}},
	{Pattern: "pondicherry", Place: Place{Name: "Pondicherry", State: "Puducherry", Lat: 11.9416, Lng: 79.8083}},
	{Pattern: "karaikal", Place: Place{Name: "Karaikal", State: "Puducherry", Lat: 10.9254, Lng: 79.8380}},
	{Pattern: "kerala", Place: Place{Name: "Kerala", State: "Kerala", Lat: 10.8505, Lng: 76.2711}},
	{Pattern: "odisha", Place: Place{Name: "Odisha", State: "Odisha", Lat: 20.9517, Lng: 85.0985}},
	{Pattern: "assam", Place: Place{Name: "Assam", State: "Assam", Lat: 26.2006, Lng: 92.9376}},
	{Pattern: "bihar", Place: Place{Name: "Bihar", State: "Bihar", Lat: 25.0961, Lng: 85.3131}},
	{Pattern: "gujarat", Place: Place{Name: "Gujarat", State: "Gujarat", Lat: 22.2587, Lng: 71.1924}},
	{Pattern: "rajasthan", Place: Place{Name: "Rajasthan", State: "Rajasthan", Lat: 27.0238, Lng: 74.2179}},
	{Pattern: "uttarakhand", Place: Place{Name: "Uttarakhand", State: "Uttarakhand", Lat: 30.0668, Lng: 79.0193}},
	{Pattern: "himachal pradesh", Place: Place{Name: "Himachal Pradesh", State: "Himachal Pradesh", Lat: 31.1048, Lng: 77.1734}},
	{Pattern: "west bengal", Place: Place{Name: "West Bengal", State: "West Bengal", Lat: 22.9868, Lng: 87.8550}},
	{Pattern: "maharashtra", Place: Place{Name: "Maharashtra", State: "Maharashtra", Lat: 19.7515, Lng: 75.7139}},
	{Pattern: "karnataka", Place: Place{Name: "Karnataka", State: "Karnataka", Lat: 15.3173, Lng: 75.7139}},
	{Pattern: "andhra pradesh", Place: Place{Name: "Andhra Pradesh", State: "Andhra Pradesh", Lat: 15.9129, Lng: 79.7400}},
	{Pattern: "uttar pradesh", Place: Place{Name: "Uttar Pradesh", State: "Uttar Pradesh", Lat: 26.8467, Lng: 80.9462}},
	{Pattern: "punjab", Place: Place{Name: "Punjab", State: "Punjab", Lat: 31.1471, Lng: 75.3412}},
	{Pattern: "jharkhand", Place: Place{Name: "Jharkhand", State: "Jharkhand", Lat: 23.6102, Lng: 85.2799}},
	{Pattern: "chhattisgarh", Place: Place{Name: "Chhattisgarh", State: "Chhattisgarh", Lat: 21.2787, Lng: 81.8661}},
	{Pattern: "meghalaya", Place: Place{Name: "Meghalaya", State: "Meghalaya", Lat: 25.4670, Lng: 91.3662}},
	{Pattern: "sikkim", Place: Place{Name: "Sikkim", State: "Sikkim", Lat: 27.5330, Lng: 88.5122}},
}
