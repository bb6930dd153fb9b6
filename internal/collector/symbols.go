package collector

// fnoStocks lists NSE stocks with listed futures and options.
var fnoStocks = []string{
	"ACC", "ADANIENT", "ADANIPORTS", "ABCAPITAL", "ABFRL", "ALKEM", "AMBUJACEM",
	"APOLLOHOSP", "APOLLOTYRE", "ASHOKLEY", "ASIANPAINT", "ASTRAL", "ATUL", "AUROPHARMA",
	"AXISBANK", "BAJAJ-AUTO", "BAJAJFINSV", "BAJFINANCE", "BALKRISIND", "BALRAMCHIN",
	"BANDHANBNK", "BANKBARODA", "BATAINDIA", "BEL", "BERGEPAINT", "BHARATFORG",
	"BHARTIARTL", "BHEL", "BIOCON", "BOSCHLTD", "BPCL", "BRITANNIA", "BSOFT", "CANBK",
	"CANFINHOME", "CHAMBLFERT", "CHOLAFIN", "CIPLA", "COALINDIA", "COFORGE", "COLPAL",
	"CONCOR", "COROMANDEL", "CROMPTON", "CUB", "CUMMINSIND", "DABUR", "DALBHARAT",
	"DEEPAKNTR", "DELTACORP", "DIVISLAB", "DIXON", "DLF", "DRREDDY", "EICHERMOT", "ESCORTS",
	"EXIDEIND", "FEDERALBNK", "GAIL", "GLENMARK", "GMRINFRA", "GNFC", "GODREJCP",
	"GODREJPROP", "GRANULES", "GRASIM", "GUJGASLTD", "HAL", "HAVELLS", "HCLTECH", "HDFCAMC",
	"HDFCBANK", "HDFCLIFE", "HEROMOTOCO", "HINDALCO", "HINDCOPPER", "HINDPETRO",
	"HINDUNILVR", "IBULHSGFIN", "ICICIBANK", "ICICIGI", "ICICIPRULI", "IDEA", "IDFC",
	"IDFCFIRSTB", "IEX", "IGL", "INDHOTEL", "INDIACEM", "INDIAMART", "INDIANB", "INDIGO",
	"INDUSINDBK", "INDUSTOWER", "INFY", "INTELLECT", "IOC", "IPCALAB", "IRB", "IRCTC",
	"ITC", "JINDALSTEL", "JKCEMENT", "JSWSTEEL", "JUBLFOOD", "KOTAKBANK", "L&TFH",
	"LALPATHLAB", "LAURUSLABS", "LICHSGFIN", "LT", "LTIM", "LTTS", "LUPIN", "LXCHEM", "M&M",
	"M&MFIN", "MANAPPURAM", "MARICO", "MARUTI", "MCDOWELL-N", "MCX", "METROPOLIS", "MFSL",
	"MGL", "MOTHERSON", "MPHASIS", "MRF", "MUTHOOTFIN", "NATIONALUM", "NAUKRI",
	"NAVINFLUOR", "NESTLEIND", "NMDC", "NTPC", "OBEROIRLTY", "OFSS", "ONGC", "PAGEIND",
	"PEL", "PERSISTENT", "PETRONET", "PFC", "PIDILITIND", "PIIND", "PNB", "POLYCAB",
	"POWERGRID", "PVRINOX", "RAMCOCEM", "RBLBANK", "RECLTD", "RELIANCE", "SAIL", "SBICARD",
	"SBILIFE", "SBIN", "SHREECEM", "SHRIRAMFIN", "SIEMENS", "SRF", "SUNPHARMA", "SUNTV",
	"SYNGENE", "TATACOMM", "TATACONSUM", "TATAMOTORS", "TATAPOWER", "TATASTEEL", "TCS",
	"TECHM", "TITAN", "TORNTPHARM", "TORNTPOWER", "TRENT", "TVSMOTOR", "UBL", "ULTRACEMCO",
	"UPL", "VEDL", "VOLTAS", "WIPRO", "ZEEL", "ZYDUSLIFE", "AARTIIND", "ABBOTINDIA",
	"ADANIENSOL", "ADANIGREEN", "ADANIPOWER", "AFFLE", "AJANTPHARM", "APLLTD", "ANANDRATHI",
	"APARINDS", "ARE&M", "ASTRAZEN", "AWL", "BAJAJHLDNG", "BASF", "BAYERCROP", "BIKAJI",
	"BLS", "BRIGADE", "BSE", "CASTROLIND", "CEATLTD", "CENTURYTEX", "CGPOWER", "CLEAN",
	"GODREJIND", "GSPL", "HAPPSTMNDS", "HATSUN", "HONAUT", "JBCHEPHARM", "JKLAKSHMI",
	"JKPAPER", "JMFINANCIL", "JSL", "KAJARIACER", "KEI", "KPITTECH", "LICI", "LODHA",
	"MAHABANK", "MANYAVAR", "MAXHEALTH", "MEDANTA", "NAM-INDIA", "NSLNISP", "OIL", "PAYTM",
	"PHOENIXLTD", "PNBHOUSING", "POONAWALLA", "RAIN", "RAJESHEXPO", "RKFORGE", "RTNINDIA",
	"SCHNEIDER", "SHARDACROP", "SJVN", "SONACOMS", "STARHEALTH", "SUMICHEM", "SUPREMEIND",
	"SUZLON", "SWANENERGY", "SYMPHONY", "TATACHEM", "TATAELXSI", "TATATECH", "TIINDIA",
	"TIMKEN", "TRIDENT", "UNIONBANK", "UNITDSPR", "VBL", "WHIRLPOOL", "YESBANK",
	"ZFCVINDIA",
}

// fnoIndices lists the index underlyings, named as NSE's option chain expects.
var fnoIndices = []string{"NIFTY", "BANKNIFTY", "FINNIFTY", "MIDCPNIFTY"}

// Universe returns every F&O underlying, stocks first, without duplicates.
func Universe() []string {
	out := make([]string, 0, len(fnoStocks)+len(fnoIndices))
	seen := make(map[string]bool, cap(out))
	for _, list := range [][]string{fnoStocks, fnoIndices} {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
