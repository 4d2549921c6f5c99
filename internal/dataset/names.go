package dataset

var firstNames = []string{
	"Anna", "Lukas", "Mia", "Noah", "Emma", "Leon", "Sofia", "Elias", "Lea", "Jonas",
	"Laura", "Felix", "Clara", "David", "Nina", "Paul", "Sara", "Luca", "Julia", "Jan",
	"Olivia", "Liam", "Amelia", "Oliver", "Ava", "James", "Isla", "Henry", "Maria", "Andrei",
	"Ioana", "Mihai", "Elena", "Stefan", "Charlotte", "Thomas", "Hannah", "Daniel", "Grace", "Samuel",
}

var lastNames = []string{
	"Müller", "Meier", "Schmid", "Keller", "Weber", "Huber", "Schneider", "Fischer", "Gruber", "Wagner",
	"Bauer", "Hofer", "de Vries", "Jansen", "Bakker", "Visser", "Smit", "Smith", "Jones", "Taylor",
	"Brown", "Williams", "Wilson", "Johnson", "Miller", "Davis", "Garcia", "Popescu", "Ionescu", "Popa",
	"Dumitru", "Stan", "Nguyen", "Kelly", "Murphy", "Walsh", "Rossi", "Russo", "Novak", "Horvat",
}
