package dispatch

// Static content tables. Pure data; selection is uniform random and holds no
// state between commands.

var menuText = "🦋 *HOLLOW KNIGHT BOT* 🦋\n" +
	"\n" +
	"⚔️ *ADMIN*\n" +
	"#tag [msg] - Notificar a todos\n" +
	"#mute (reply) - Silenciar usuario\n" +
	"#unmute (reply) - Des-silenciar\n" +
	"#del - Borrar mensaje\n" +
	"#kick (reply) - Expulsar usuario\n" +
	"\n" +
	"🎮 *JUEGOS*\n" +
	"#dado - Tirar dado\n" +
	"#moneda - Cara o cruz\n" +
	"#8ball - Bola mágica\n" +
	"#ppt p|r|t - Piedra, papel, tijera\n" +
	"#ruleta - Número random\n" +
	"#adivina - Adivinanza\n" +
	"\n" +
	"😄 *DIVERSIÓN*\n" +
	"#chiste - Contar chiste\n" +
	"#piropo - Piropo random\n" +
	"#insulto - Insulto gracioso\n" +
	"#meme - Imagen random"

var eightBallAnswers = []string{
	"Sí",
	"No",
	"Tal vez",
	"Probablemente",
	"Definitivamente no",
	"Pregunta luego",
}

var jokes = []string{
	"—¿Qué le dice un primer piso a un segundo piso? — ¡Sube, que está muy aburrido aquí abajo!",
	"—¿Por qué los programadores confunden Halloween y Navidad? — Porque OCT 31 == DEC 25.",
	"—¿Qué hace una abeja en el gimnasio? — ¡Zum-ba!",
	"—¿Cómo se llama un boomerang que no vuelve? — Palo.",
	"—¿Cuál es el colmo de un matemático? — Morirse de parábola.",
	"—¿Qué le dice un Terminator a un bar? — Quiero un trago... Y VOLVERE.",
	"—¿Cómo llamas a un oso sin dientes? — Gomoso.",
	"—¿Por qué el libro de matemáticas se suicidó? — Porque tenía demasiados problemas.",
	"—¿Qué hace un plátano en el banco? — ¡Dinero en rama!",
	"—¿Cómo se llama un detective argentino? — Sherlock Omes.",
	"—¿Por qué la silla fue al psicólogo? — Porque tenía problemas para sentarse.",
	"—¿Qué hace un ninja en la cocina? — ¡Sushi-do!",
	"—¿Por qué los esqueletos no tienen miedo? — Porque no tienen agallas.",
	"—¿Cómo se llama un reloj que no funciona? — ¡Perfecto! Sirve dos veces al día.",
	"—¿Por qué fue el número 7 a la cárcel? — Porque había robado un 8.",
}

var insults = []string{
	"Eres tan aburrido que en tu funeral la gente se duerme.",
	"Tienes la personalidad de una piedra, solo que menos interesante.",
	"Eres tan inteligente que necesitas instrucciones para respirar.",
	"Tu sentido del humor es como tu belleza: inexistente.",
	"Podrías ser la cura para el insomnio—solo hablando.",
	"Eres tan aburrido que los insectos tienen una vida social mejor.",
	"Tu conversación es como una película de 3 horas: innecesariamente larga.",
	"Tienes menos encanto que un cubo de basura.",
	"Eres tan plano que los mapas te ponen como referencia.",
	"Tu inteligencia es inversamente proporcional a tu confianza.",
	"Eres tan mediocre que los diccionarios te ponen como foto de referencia.",
	"Tu existencia es más confusa que instrucciones en sueco.",
	"Tienes menos impacto que un susurro en una tormenta.",
}

var compliments = []string{
	"Eres la luz del modo noche.",
	"Si fueras bug, sería feliz depurarte.",
	"Tienes más charisma que Wi-Fi abierto.",
	"Eres más atractivo que una pantalla OLED.",
	"Tu sonrisa es mejor que tener 100% de batería.",
	"Eres como una conexión a internet: imprescindible.",
	"Tu belleza hace crash los servidores.",
	"Si fueras código, serías open source.",
	"Tu sonrisa ilumina más que mil soles.",
	"Tienes los ojos más bonitos que las estrellas del cielo.",
	"Tu presencia hace que todo sea mejor.",
	"Tu risa es la mejor música que he escuchado.",
	"Eres el motivo por el que creo en la magia.",
	"Tu belleza es arte puro.",
}

// riddle keywords drive the #respuesta substring match. The check is
// stateless across riddles: any attempt is matched against every table
// entry, not just the last riddle shown.
type riddle struct {
	Question string
	Answer   string
	Keywords []string
}

var riddles = []riddle{
	{
		Question: "Blanca por dentro, verde por fuera. Si quieres que te lo diga, espera.",
		Answer:   "La pera",
		Keywords: []string{"pera"},
	},
	{
		Question: "Tiene agujas pero no pincha, da vueltas y no es rueda.",
		Answer:   "El reloj",
		Keywords: []string{"reloj"},
	},
}
