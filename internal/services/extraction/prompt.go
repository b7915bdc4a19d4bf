package extraction

// FinancialPrompt is the instruction block placed in front of every article.
// The indentation and trailing spaces are part of the prompt the model sees.
const FinancialPrompt = "Please retrieve company name, revenue, net income and earnings per share (a.k.a. EPS)\n" +
	"    from the following news article. If you can't find the information from this article \n" +
	"    then return \"\". Do not make things up.    \n" +
	"    Then retrieve a stock symbol corresponding to that company. For this you can use\n" +
	"    your general knowledge (it doesn't have to be from this article). Always return your\n" +
	"    response as a valid JSON string. The format of that string should be this, \n" +
	"    {\n" +
	"        \"Company Name\": \"Walmart\",\n" +
	"        \"Stock Symbol\": \"WMT\",\n" +
	"        \"Revenue\": \"12.34 million\",\n" +
	"        \"Net Income\": \"34.78 million\",\n" +
	"        \"EPS\": \"2.1 $\"\n" +
	"    }\n" +
	"    News Article:\n" +
	"    ============\n" +
	"\n" +
	"    "

// ComposePrompt appends the article text, unchanged, to FinancialPrompt.
func ComposePrompt(articleText string) string {
	return FinancialPrompt + articleText
}
