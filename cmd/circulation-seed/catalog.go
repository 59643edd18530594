package main

type seedTitle struct {
	title  string
	author string
	copies int
}

type seedPatron struct {
	name  string
	email string
}

const (
	seedLanguage    = "Français"
	seedCategory    = "General"
	seedAffiliation = "Public"
)

var seedCatalog = []seedTitle{
	{"Le Petit Prince", "Antoine de Saint-Exupéry", 3},
	{"1984", "George Orwell", 2},
	{"Les Misérables", "Victor Hugo", 1},
	{"Le Seigneur des Anneaux", "J.R.R. Tolkien", 2},
	{"Harry Potter à l'école des sorciers", "J.K. Rowling", 4},
	{"Orgueil et Préjugés", "Jane Austen", 2},
	{"Les Trois Mousquetaires", "Alexandre Dumas", 2},
	{"Le Comte de Monte Cristo", "Alexandre Dumas", 2},
	{"L'Île au Trésor", "Robert Louis Stevenson", 1},
	{"Sherlock Holmes", "Arthur Conan Doyle", 3},
	{"Le Hobbit", "J.R.R. Tolkien", 2},
	{"Fondation", "Isaac Asimov", 1},
	{"Dune", "Frank Herbert", 2},
	{"Le Meilleur des Mondes", "Aldous Huxley", 1},
	{"Fahrenheit 451", "Ray Bradbury", 2},
	{"L'Étranger", "Albert Camus", 1},
	{"La Métamorphose", "Franz Kafka", 1},
	{"Cent ans de solitude", "Gabriel García Márquez", 2},
	{"Don Quichotte", "Miguel de Cervantes", 1},
	{"Crime et Châtiment", "Fiodor Dostoïevski", 1},
	{"Les Fleurs du Mal", "Charles Baudelaire", 2},
	{"Moby Dick", "Herman Melville", 1},
	{"Guerre et Paix", "Léon Tolstoï", 1},
	{"Anna Karénine", "Léon Tolstoï", 2},
	{"Notre-Dame de Paris", "Victor Hugo", 2},
	{"Jane Eyre", "Charlotte Brontë", 2},
	{"Les Hauts de Hurlevent", "Emily Brontë", 1},
	{"Le Grand Gatsby", "F. Scott Fitzgerald", 2},
	{"De la Terre à la Lune", "Jules Verne", 2},
	{"Vingt mille lieues sous les mers", "Jules Verne", 2},
	{"Le Voyage au centre de la Terre", "Jules Verne", 1},
	{"Frankenstein", "Mary Shelley", 2},
	{"Dracula", "Bram Stoker", 2},
	{"Alice au pays des merveilles", "Lewis Carroll", 3},
	{"Oliver Twist", "Charles Dickens", 2},
	{"Mémoires d'Hadrien", "Marguerite Yourcenar", 1},
	{"Le Deuxième Sexe", "Simone de Beauvoir", 1},
	{"Candide", "Voltaire", 2},
	{"Le Contrat Social", "Jean-Jacques Rousseau", 1},
	{"L'Esprit des Lois", "Montesquieu", 1},
}

var seedPatrons = []seedPatron{
	{"Alice Martin", "alice.martin@example.com"},
	{"Bob Dupont", "bob.dupont@example.com"},
	{"Charlie Bernard", "charlie.bernard@example.com"},
	{"Diana Leclerc", "diana.leclerc@example.com"},
	{"Eva Moreau", "eva.moreau@example.com"},
	{"François Petit", "francois.petit@example.com"},
	{"Gabrielle Lefevre", "gabrielle.lefevre@example.com"},
	{"Henri Michel", "henri.michel@example.com"},
	{"Isabelle Roux", "isabelle.roux@example.com"},
	{"Jean Dubois", "jean.dubois@example.com"},
}
