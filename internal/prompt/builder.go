package prompt

import (
	"fmt"
	"strings"

	"github.com/lexforge/lexforge/internal/domain"
)

// Generation defaults, tuned for one passage with a small MCQ set.
const (
	DefaultQuestionCount  = 3
	DefaultChoiceCount    = 3
	DefaultWordTarget     = 150
	DefaultParagraphCount = 3
)

// SystemGenerator is the system prompt for JSON-returning generation calls.
const SystemGenerator = "You are an expert AI assistant specializing in creating educational content for English language learners. " +
	"You always respond with exactly one minified JSON object and nothing else: no prose, no markdown fences."

// SystemArticle is the system prompt for plain-prose article generation.
// Articles are a text surface, not a JSON unit, so no JSON contract here.
const SystemArticle = `You are an expert writer of short educational articles for English language learners.
Write clear, engaging prose appropriate to the requested level.
Return ONLY the article text: a title line followed by the paragraphs. No markdown, no commentary.`

// Article builds the user prompt for a standalone article.
func Article(topic, levelName string, paragraphs, wordTarget int) string {
	if paragraphs <= 0 {
		paragraphs = DefaultParagraphCount
	}
	if wordTarget <= 0 {
		wordTarget = DefaultWordTarget
	}
	return fmt.Sprintf("Write an article about '%s' for an English learner at the '%s' level. "+
		"Use approximately %d paragraphs and %d words in total. Begin with a short title on its own line.",
		topic, levelName, paragraphs, wordTarget)
}

// SystemRandomTopic asks for a bare topic title, plain text.
const SystemRandomTopic = `You are an assistant that generates creative and suitable article topics.
Your task is to provide a single, specific, and engaging topic title for an article aimed at English language learners.
The topic should be interesting and relevant to their studies, focusing on aspects of English language, literature, art, science, technology, cultures, natures, Taiwan, geography, geology, and world history from an English learner's perspective.
Return ONLY the topic title as a plain string, without any quotation marks, labels (e.g., "Topic:"), or additional text.
Example of good output: The Symbolism of Colors in Shakespeare's Plays
Example of bad output: "Topic: The Symbolism of Colors in Shakespeare's Plays"`

// RandomTopicPrompt is the user prompt paired with SystemRandomTopic.
func RandomTopicPrompt() string {
	return "Generate one topic title now."
}

// MaterialOptions parameterizes a combined passage-plus-questions prompt.
type MaterialOptions struct {
	Topic          string // empty picks a random catalog topic
	Level          domain.DifficultyDetail
	QuestionCount  int
	ChoiceCount    int
	WordTarget     int
	ParagraphCount int
}

func (o *MaterialOptions) fill() {
	if o.Topic == "" {
		o.Topic = RandomTopic()
	}
	if o.Level.Stage == "" {
		o.Level = DefaultLevel()
	}
	if o.QuestionCount <= 0 {
		o.QuestionCount = DefaultQuestionCount
	}
	if o.ChoiceCount <= 0 {
		o.ChoiceCount = DefaultChoiceCount
	}
	if o.WordTarget <= 0 {
		o.WordTarget = DefaultWordTarget
	}
	if o.ParagraphCount <= 0 {
		o.ParagraphCount = DefaultParagraphCount
	}
}

// ReadingMaterial builds the prompt for one complete learning module: a
// passage asset plus its comprehension questions in a single JSON object.
// The literal field names here are the wire contract the ingestion side
// decodes, so they must not drift.
func ReadingMaterial(opts MaterialOptions) string {
	opts.fill()
	level := opts.Level.Name.EN

	var b strings.Builder
	fmt.Fprintf(&b, "Your task is to generate a complete learning module consisting of a reading passage asset and a set of comprehension questions.\n")
	fmt.Fprintf(&b, "The output MUST be a single, minified JSON object with two top-level keys: 'passageAsset' and 'questions_list'.\n\n")

	fmt.Fprintf(&b, "**Overall Specifications for Generation:**\n")
	fmt.Fprintf(&b, "- Topic for passage and questions: '%s'.\n", opts.Topic)
	fmt.Fprintf(&b, "- Target Student Difficulty (used for 'difficulty.name.en'): '%s'.\n\n", level)

	fmt.Fprintf(&b, "**Part 1: `passageAsset` Object Generation**\n")
	fmt.Fprintf(&b, "1.  `assetId`: (String) Generate a unique identifier string for this passage. This ID links questions to this passage. This field is mandatory.\n")
	fmt.Fprintf(&b, "2.  `assetType`: (String) Set to \"PASSAGE\".\n")
	fmt.Fprintf(&b, "3.  `title`: (Object) `en` and `zh_tw` keys; a concise English title about '%s' and its Traditional Chinese translation.\n", opts.Topic)
	fmt.Fprintf(&b, "4.  `content`: (String) The full text of an engaging reading passage about '%s', approximately %d paragraphs and %d words, appropriate for the '%s' level.\n",
		opts.Topic, opts.ParagraphCount, opts.WordTarget, level)
	fmt.Fprintf(&b, "5.  `difficulty`: (Object) `name` ({\"en\": \"%s\", \"zh_tw\": Traditional Chinese translation}), `stage` (\"%s\"), `grade` (%d), `level` (%d, on a 1-10 scale).\n",
		level, opts.Level.Stage, opts.Level.Grade, opts.Level.Level)
	fmt.Fprintf(&b, "6.  `description` (Optional): (Object) `en` and `zh_tw` short descriptions of the passage.\n")
	fmt.Fprintf(&b, "7.  `learningObjectives` (Optional): (List of strings) 1-3 entries.\n")
	fmt.Fprintf(&b, "8.  `tags` (Optional): (List of strings) 1-3 relevant keywords.\n")
	fmt.Fprintf(&b, "9.  `source`: (String) Set to \"AI Generated from topic: %s\".\n", opts.Topic)
	fmt.Fprintf(&b, "10. `status`: (String) Set to \"DRAFT\".\n")
	fmt.Fprintf(&b, "11. `version`: (Integer) Set to 1.\n\n")

	fmt.Fprintf(&b, "**Part 2: `questions_list` Array Generation**\n")
	fmt.Fprintf(&b, "Create a JSON array containing exactly %d multiple-choice comprehension question objects based on the `passageAsset.content` YOU JUST GENERATED. Each question object must have:\n", opts.QuestionCount)
	fmt.Fprintf(&b, "-   `questionType`: (String) Set to \"READING_COMPREHENSION\".\n")
	fmt.Fprintf(&b, "-   `contentAssetId`: (String) MUST be the exact same string value as the `assetId` of `passageAsset`. This field is mandatory.\n")
	fmt.Fprintf(&b, "-   `difficulty`: (Object) Structured identically to `passageAsset.difficulty` and consistent with it.\n")
	fmt.Fprintf(&b, "-   `learningObjectives`: (List of strings) 1-3 entries describing what the question assesses.\n")
	fmt.Fprintf(&b, "-   `questionText`: (String) The question text in English.\n")
	fmt.Fprintf(&b, "-   `choices`: (List of %d objects) Each: {\"text\": String, \"isCorrect\": Boolean}. Exactly one `isCorrect` must be true.\n", opts.ChoiceCount)
	fmt.Fprintf(&b, "-   `explanation`: (Object) `en` and `zh_tw` explanations referring back to the passage.\n\n")

	fmt.Fprintf(&b, "**Output Format Instructions (Recap):**\n")
	fmt.Fprintf(&b, "Your entire response MUST be a single, minified JSON object with the two top-level keys above. No other text outside the JSON object. Do not use markdown backticks around the output.\n\n")

	fmt.Fprintf(&b, "**Example of the complete output structure (your actual output must be minified):**\n")
	fmt.Fprintf(&b, `{"passageAsset":{"assetId":"passage-example-1","assetType":"PASSAGE","title":{"en":"The Mysteries of the Deep Ocean","zh_tw":"深海的奧秘"},"content":"The deep ocean, a realm of perpetual darkness...","difficulty":{"name":{"en":"%s","zh_tw":"..."},"stage":"%s","grade":%d,"level":%d},"description":{"en":"An informative passage about the deep ocean.","zh_tw":"一篇關於深海的知識性文章。"},"learningObjectives":["understanding scientific vocabulary"],"tags":["ocean","science"],"source":"AI Generated from topic: %s","status":"DRAFT","version":1},"questions_list":[{"questionType":"READING_COMPREHENSION","contentAssetId":"passage-example-1","difficulty":{"name":{"en":"%s","zh_tw":"..."},"stage":"%s","grade":%d,"level":%d},"learningObjectives":["locating specific information"],"questionText":"According to the passage, what is one major challenge for life in the deep ocean?","choices":[{"text":"Abundant sunlight","isCorrect":false},{"text":"Immense pressure","isCorrect":true},{"text":"Warm temperatures","isCorrect":false}],"explanation":{"en":"The passage explicitly mentions immense pressure.","zh_tw":"文章明確提到巨大的壓力。"}}]}`,
		level, opts.Level.Stage, opts.Level.Grade, opts.Level.Level, opts.Topic,
		level, opts.Level.Stage, opts.Level.Grade, opts.Level.Level)
	b.WriteString("\n")
	return b.String()
}

// BatchOptions parameterizes a question batch prompt over an existing
// passage. The answer shape uses the flat explanation keys; the request
// context (type, passage, difficulty) supplies what the elements omit.
type BatchOptions struct {
	PassageContent string
	LevelName      string
	Count          int
	ChoiceCount    int
	TextInput      bool // acceptableAnswers instead of choices
	Objectives     []string
}

// QuestionBatch builds the prompt for N questions over a passage, returned
// in a {"questions_list": [...]} envelope.
func QuestionBatch(opts BatchOptions) string {
	if opts.Count <= 0 {
		opts.Count = DefaultQuestionCount
	}
	if opts.ChoiceCount <= 0 {
		opts.ChoiceCount = DefaultChoiceCount
	}
	objectives := "general comprehension"
	if len(opts.Objectives) > 0 {
		objectives = strings.Join(opts.Objectives, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are creating reading comprehension questions.\n")
	fmt.Fprintf(&b, "Reading passage:\n```\n%s\n```\n", opts.PassageContent)
	if opts.LevelName != "" {
		fmt.Fprintf(&b, "Passage level: '%s'.\n", opts.LevelName)
	}
	fmt.Fprintf(&b, "Learning objectives: %s.\n", objectives)
	fmt.Fprintf(&b, "Generate exactly %d question(s). Your response MUST be a single minified JSON object of the form {\"questions_list\":[...]} with exactly %d elements and nothing else.\n",
		opts.Count, opts.Count)
	fmt.Fprintf(&b, "Each element MUST be a JSON object with keys: 'questionText' (string, English), ")
	if opts.TextInput {
		fmt.Fprintf(&b, "'acceptableAnswers' (list of 1-3 strings, English), ")
	} else {
		fmt.Fprintf(&b, "'choices' (list of %d objects, each with 'text' (string, English) and 'isCorrect' (boolean, exactly one true)), ", opts.ChoiceCount)
	}
	fmt.Fprintf(&b, "'explanation_en' (string, English), 'explanation_zh_tw' (string, Traditional Chinese).\n")
	fmt.Fprintf(&b, `Example MCQ element: {"questionText":"What is the main idea?","choices":[{"text":"A","isCorrect":false},{"text":"B","isCorrect":true},{"text":"C","isCorrect":false}],"explanation_en":"B restates the thesis.","explanation_zh_tw":"B 重述了主旨。"}`)
	b.WriteString("\n")
	fmt.Fprintf(&b, `Example text input element: {"questionText":"What is Alice's name?","acceptableAnswers":["Alice"],"explanation_en":"Her name is Alice.","explanation_zh_tw":"她的名字是愛麗絲。"}`)
	b.WriteString("\n")
	return b.String()
}

// Question builds a standalone one-question prompt for any question type.
func Question(qt domain.QuestionType, level domain.DifficultyDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate one English learning question for a student at the '%s' level.\n", level.Name.EN)
	fmt.Fprintf(&b, "Your response MUST be a single minified JSON object and nothing else.\n")
	fmt.Fprintf(&b, "Common keys: 'questionType' (set to %q), 'learningObjectives' (list of strings), 'explanation_en' (string, English), 'explanation_zh_tw' (string, Traditional Chinese).\n", string(qt))

	switch qt {
	case domain.TypeFillInTheBlank:
		b.WriteString("Type-specific keys: 'questionText' (a sentence with the blank written as '___', mandatory), " +
			"'answerInputType' (either \"MULTIPLE_CHOICE\" with a 'choices' list of {\"text\",\"isCorrect\"} objects and exactly one isCorrect=true, " +
			"or \"TEXT_INPUT\" with an 'acceptableAnswers' list of strings). Provide exactly one of 'choices' or 'acceptableAnswers'.\n")
	case domain.TypeTranslation:
		b.WriteString("Type-specific keys: 'sourceText' ({\"en\",\"zh_tw\"} object), 'targetLanguage' (\"en\" or \"zh_tw\"), " +
			"'acceptableTranslations' (list of 1-3 strings in the target language).\n")
	case domain.TypePictureDescription:
		b.WriteString("Type-specific keys: 'imageAssetId' (identifier of the picture the learner sees, mandatory), " +
			"'questionText' (instruction for describing the picture), " +
			"'suggestedKeywords' (list of strings the description should use).\n")
	case domain.TypeReadingComprehension, domain.TypeListeningComprehension:
		b.WriteString("Type-specific keys: 'contentAssetId' (identifier of the passage or audio clip, mandatory), " +
			"'questionText' (string), and exactly one of " +
			"'choices' (list of {\"text\",\"isCorrect\"} objects, exactly one isCorrect=true) or 'acceptableAnswers' (list of strings).\n")
	case domain.TypeSpellingCorrection:
		b.WriteString("Type-specific keys, exactly one mode: either 'wordChoices' (list of spellings, one correct) with 'correctWord' " +
			"(the correctly spelled member of wordChoices), or 'sentenceWithMisspelledWord' (string) with 'misspelledWordInSentence' " +
			"(the misspelled word as it appears) and 'correctWord' (its correct spelling).\n")
	}
	return b.String()
}
