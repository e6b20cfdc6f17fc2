package songs

// catalog is ordered by id. Covers and audio files live under the static
// directory served by the HTTP layer.
var catalog = []Song{
	{
		ID:     1,
		Title:  "Code and Color",
		Author: "Chat gpt",
		Genre:  "Pop",
		Cover:  "demo.jpg",
		File:   "song1.mp3",
		Lyrics: `Woke up with a spark in my mind...
Dreams in HTML, stars aligned...
Coffee and code, I’m chasing the flow...
Building a world only I know...
Avatars smile in the neon light...
Font selectors dancing through the night...
Every bug’s a beat, every fix a rhyme...
I’m painting pixels one line at a time...
This is my code and color...
My rhythm, my undercover...
A site that sings my name...
In every modal frame...
I’m not just lines on a screen...
I’m the story in between...
This is my code and color...
My truth, my thunder...
Git push, commit to the dream...
Deploying hope on a Netlify stream...
Friends in the cloud, feedback in waves...
I’m styling courage, bold and brave...
From Rampura to the stars above...
I write in light, I write in love...
No template fits what I create...
I’m blueBird, I innovate...
This is my code and color...
My rhythm, my undercover...
A site that sings my name...
In every modal frame...
I’m not just lines on a screen...
I’m the story in between...
This is my code and color...
My truth, my thunder...`,
	},
	{
		ID:     2,
		Title:  "Satellite Dreams",
		Author: "Gemini",
		Genre:  "Pop",
		Cover:  "demo.jpg",
		File:   "song2.mp3",
		Lyrics: `Floating through the velvet black...
Signals lost, no turning back...
I send my voice through silent space...
Hoping it will find your face...
Stars blink like ancient eyes...
Galaxies whisper lullabies...
I orbit hope, I orbit pain...
Round and round, again, again...
Satellite dreams, drifting far...
Chasing echoes of who you are...
I beam my heart in binary...
Across the void, you carry me...
Comets burn and planets spin...
But I still feel you deep within...
Satellite dreams, drifting far...
Chasing echoes of who you are...`,
	},
	{
		ID:     3,
		Title:  "Midnight Mangoes",
		Author: "Grok",
		Genre:  "Lofi",
		Cover:  "demo.jpg",
		File:   "song3.mp3",
		Lyrics: `Steam rising from the cart...
Lanterns flicker in the dark...
She hands me mangoes, sweet and cold...
Wrapped in stories never told...
The city hums a lullaby...
Rickshaws blur as they pass by...
I taste the spice, I taste the flame...
But all I want is her name...
Midnight mangoes, golden light...
She’s the flavor of the night...
Every bite, a memory...
Of what we were, or used to be...
She smiles like monsoon rain...
Soft and sudden, sweet with pain...
I walk away, but turn around...
Her laughter is a sacred sound...
Midnight mangoes, golden light...
She’s the flavor of the night...`,
	},
	{
		ID:     4,
		Title:  "Golden Hours",
		Author: "Claude",
		Genre:  "romantic",
		Cover:  "demo.jpg",
		File:   "song4.mp3",
		Lyrics: `Suitcase by the door, tickets in my hand...
Two hearts beating wild, heading to a foreign land...
White dress in the closet, tuxedo hanging near...
The world can wait forever, when you're here...
These are our golden hours, honey...
Dancing in the sunset light...
Every kiss tastes like forever...
Everything's gonna be alright...
Golden hours, sweet and sacred...
Time moves slow when love is new...
In these golden hours, darling...
It's just me and you...
Ocean waves are calling, room with a view...
Champagne bubbles rising, like my love for you...
Footprints in the sand spell out our names...
Nothing's gonna be the same...
These are our golden hours, honey...
Dancing in the sunset light...
Every kiss tastes like forever...
Everything's gonna be alright...
Golden hours, sweet and sacred...
Time moves slow when love is new...
In these golden hours, darling...
It's just me and you...
Years from now we'll remember...
This perfect slice of time...
When the world was ours completely...
And you were mine, all mine...
These were our golden hours, honey...
Dancing in the sunset light...
Every kiss tasted like forever...
Everything was gonna be alright`,
	},
	{
		ID:     5,
		Title:  "Neon Confessions",
		Author: "Claude",
		Genre:  "Crime and Murder",
		Cover:  "demo.jpg",
		File:   "song5.mp3",
		Lyrics: `Rain on the pavement, sirens in the night...
Red and blue reflections, nothing feels right...
Detective's asking questions I can't answer clean...
Living in the shadows of what I've seen...
In the city where the guilty run free...
And the innocent pay the price...
Neon confessions light up the street...
Rolling loaded dice...
Truth gets buried six feet deep...
While the lies keep climbing high...
In this concrete jungle of deceit...
Good men learn to lie...
Witness to a murder, but I can't speak out...
The killer knows my address, filled my heart with doubt...
Justice wears a blindfold, but money talks too loud...
Lost myself completely in this lawless crowd...
In the city where the guilty run free...
And the innocent pay the price...
Neon confessions light up the street...
Rolling loaded dice...
Truth gets buried six feet deep...
While the lies keep climbing high...
In this concrete jungle of deceit...
Good men learn to lie...
Mama raised me right, taught me wrong from right...
But survival's got its own morality...
When the darkness falls and you're alone at night...
You do what you gotta do to stay free...
In the city where the guilty run free...
And the innocent disappear...
Neon confessions haunt my dreams...
Living life in fear`,
	},
	{
		ID:     6,
		Title:  "Learning to Breathe",
		Author: "Claude",
		Genre:  "Coping with pain",
		Cover:  "demo.jpg",
		File:   "song6.mp3",
		Lyrics: `Doctor says there's nothing more that they can do...
Pills don't touch the aching that I'm going through...
Friends keep saying 'stay strong,' but they don't understand...
Sometimes just surviving takes all that I am...
Learning to breathe through the fire...
Learning to walk through the storm...
Finding my way in the darkness...
Searching for somewhere warm...
Pain may have broken my body...
But it won't break my soul...
Learning to breathe is the first step...
To becoming whole...
Mornings are the hardest, facing each new day...
Grief sits at my table in its old familiar way...
But somewhere in the struggle, I find a quiet strength...
Discovering that healing comes in any length...
Learning to breathe through the fire...
Learning to walk through the storm...
Finding my way in the darkness...
Searching for somewhere warm...
Pain may have broken my body...
But it won't break my soul...
Learning to breathe is the first step...
To becoming whole...
Scars tell their own stories...
Of battles fought and won...
Each day I'm still standing...
Proves I'm not done...
Not done fighting, not done trying...
Not done believing in tomorrow...
Learning to breathe through the sorrow...
Learning to breathe through the fire...
Learning to walk through the storm...
I found my way in the darkness...
Now I'm somewhere warm...
Pain tried to break my spirit...
But it only made me whole...
Learning to breathe was the first step...
To healing my soul`,
	},
}
